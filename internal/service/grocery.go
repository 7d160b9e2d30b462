package service

import (
	"context"
	"fmt"
	"najia-backend/internal/apperr"
	"najia-backend/internal/model"
	"najia-backend/internal/repository"

	"github.com/google/uuid"
)

const (
	GroceryStatusPending  = "pending"
	GroceryStatusApproved = "approved"
	GroceryStatusRejected = "rejected"
)

// small requests skip manual review
const groceryAutoApproveLimit = 200

type GroceryService interface {
	CreateRequest(ctx context.Context, userID, items string, amountRequested int64) (*model.GroceryRequest, error)
	ListRequests(ctx context.Context) ([]*model.GroceryRequest, error)
	GetRequest(ctx context.Context, requestID string) (*model.GroceryRequest, error)
	Approve(ctx context.Context, requestID string) (*model.GroceryRequest, error)
	Reject(ctx context.Context, requestID string) (*model.GroceryRequest, error)
}

type groceryServiceImpl struct {
	groceryRepo repository.GroceryRepository
}

func NewGroceryService(groceryRepo repository.GroceryRepository) GroceryService {
	return &groceryServiceImpl{
		groceryRepo: groceryRepo,
	}
}

func (s *groceryServiceImpl) CreateRequest(ctx context.Context, userID, items string, amountRequested int64) (*model.GroceryRequest, error) {
	if amountRequested < 1 {
		return nil, apperr.Validation("amount_requested must be positive")
	}

	status := GroceryStatusPending
	if amountRequested <= groceryAutoApproveLimit {
		status = GroceryStatusApproved
	}

	request := &model.GroceryRequest{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           items,
		AmountRequested: amountRequested,
		Status:          status,
	}
	if err := s.groceryRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("create grocery request: %w", err)
	}
	return request, nil
}

func (s *groceryServiceImpl) ListRequests(ctx context.Context) ([]*model.GroceryRequest, error) {
	return s.groceryRepo.FindAll(ctx)
}

func (s *groceryServiceImpl) GetRequest(ctx context.Context, requestID string) (*model.GroceryRequest, error) {
	request, err := s.groceryRepo.FindByID(ctx, requestID)
	if repository.IsNotFoundErr(err) {
		return nil, apperr.NotFound("grocery request not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load grocery request: %w", err)
	}
	return request, nil
}

func (s *groceryServiceImpl) Approve(ctx context.Context, requestID string) (*model.GroceryRequest, error) {
	return s.updateStatus(ctx, requestID, GroceryStatusApproved)
}

func (s *groceryServiceImpl) Reject(ctx context.Context, requestID string) (*model.GroceryRequest, error) {
	return s.updateStatus(ctx, requestID, GroceryStatusRejected)
}

func (s *groceryServiceImpl) updateStatus(ctx context.Context, requestID, status string) (*model.GroceryRequest, error) {
	request, err := s.groceryRepo.UpdateStatus(ctx, requestID, status)
	if repository.IsNotFoundErr(err) {
		return nil, apperr.NotFound("grocery request not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update grocery request: %w", err)
	}
	return request, nil
}
