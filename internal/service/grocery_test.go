package service

import (
	"context"
	"testing"

	"najia-backend/internal/apperr"
	"najia-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGroceryService(t *testing.T) GroceryService {
	t.Helper()
	return NewGroceryService(repository.NewGroceryRepository(setupTestDB(t)))
}

func TestSmallGroceryRequestAutoApproved(t *testing.T) {
	svc := newTestGroceryService(t)

	request, err := svc.CreateRequest(context.Background(), "user-1", "rice, cooking oil", 200)
	require.NoError(t, err)
	assert.Equal(t, GroceryStatusApproved, request.Status)
}

func TestLargeGroceryRequestStaysPending(t *testing.T) {
	svc := newTestGroceryService(t)

	request, err := svc.CreateRequest(context.Background(), "user-1", "monthly groceries", 201)
	require.NoError(t, err)
	assert.Equal(t, GroceryStatusPending, request.Status)
}

func TestGroceryRequestRejectsNonPositiveAmount(t *testing.T) {
	svc := newTestGroceryService(t)

	_, err := svc.CreateRequest(context.Background(), "user-1", "nothing", 0)
	assert.True(t, apperr.IsValidation(err))
}

func TestGroceryApproveAndReject(t *testing.T) {
	svc := newTestGroceryService(t)
	ctx := context.Background()

	pending, err := svc.CreateRequest(ctx, "user-1", "monthly groceries", 500)
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, GroceryStatusApproved, approved.Status)

	rejected, err := svc.Reject(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, GroceryStatusRejected, rejected.Status)
}

func TestGroceryListReturnsAll(t *testing.T) {
	svc := newTestGroceryService(t)
	ctx := context.Background()

	_, err := svc.CreateRequest(ctx, "user-1", "rice", 100)
	require.NoError(t, err)
	_, err = svc.CreateRequest(ctx, "user-2", "flour", 300)
	require.NoError(t, err)

	requests, err := svc.ListRequests(ctx)
	require.NoError(t, err)
	assert.Len(t, requests, 2)
}

func TestGroceryUnknownRequest(t *testing.T) {
	svc := newTestGroceryService(t)
	ctx := context.Background()

	_, err := svc.GetRequest(ctx, "missing")
	assert.True(t, apperr.IsNotFound(err))

	_, err = svc.Approve(ctx, "missing")
	assert.True(t, apperr.IsNotFound(err))
}
