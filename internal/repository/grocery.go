package repository

import (
	"context"
	"najia-backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type GroceryRepository interface {
	Create(ctx context.Context, request *model.GroceryRequest) error
	FindByID(ctx context.Context, requestID string) (*model.GroceryRequest, error)
	FindAll(ctx context.Context) ([]*model.GroceryRequest, error)
	UpdateStatus(ctx context.Context, requestID, status string) (*model.GroceryRequest, error)
}

type groceryRepoImpl struct {
	db *gorm.DB
}

func NewGroceryRepository(db *gorm.DB) GroceryRepository {
	return &groceryRepoImpl{
		db: db,
	}
}

func (r *groceryRepoImpl) Create(ctx context.Context, request *model.GroceryRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *groceryRepoImpl) FindByID(ctx context.Context, requestID string) (*model.GroceryRequest, error) {
	var request model.GroceryRequest
	err := r.db.WithContext(ctx).
		Where("id = ?", requestID).
		First(&request).Error
	if err != nil {
		return nil, err
	}

	return &request, nil
}

func (r *groceryRepoImpl) FindAll(ctx context.Context) ([]*model.GroceryRequest, error) {
	var requests []*model.GroceryRequest
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *groceryRepoImpl) UpdateStatus(ctx context.Context, requestID, status string) (*model.GroceryRequest, error) {
	var request model.GroceryRequest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.GroceryRequest{}).
			Where("id = ?", requestID).
			Updates(map[string]interface{}{
				"status":     status,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("id = ?", requestID).First(&request).Error
	})
	if err != nil {
		return nil, err
	}

	return &request, nil
}
