package repository

import (
	"context"
	"najia-backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository interface {
	FindByUser(ctx context.Context, userID string) (*model.Subscription, error)
	// Upsert renews in place: one subscription row per user, never
	// appended.
	Upsert(ctx context.Context, tx *gorm.DB, sub *model.Subscription) error
	// ExpireDue flips active subscriptions whose end date has passed and
	// returns the affected user ids.
	ExpireDue(ctx context.Context, now time.Time) ([]string, error)
}

type subscriptionRepoImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepoImpl{
		db: db,
	}
}

func (r *subscriptionRepoImpl) FindByUser(ctx context.Context, userID string) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&sub).Error
	if err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *subscriptionRepoImpl) Upsert(ctx context.Context, tx *gorm.DB, sub *model.Subscription) error {
	if tx == nil {
		tx = r.db
	}

	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"plan_type":  sub.PlanType,
			"start_date": sub.StartDate,
			"end_date":   sub.EndDate,
			"status":     sub.Status,
			"updated_at": time.Now(),
		}),
	}).Create(sub).Error
}

func (r *subscriptionRepoImpl) ExpireDue(ctx context.Context, now time.Time) ([]string, error) {
	var userIDs []string
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("status = ?", model.SubscriptionStatusActive).
		Where("end_date < ?", now).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		return nil, nil
	}

	err = r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("user_id IN ?", userIDs).
		Where("status = ?", model.SubscriptionStatusActive).
		Updates(map[string]interface{}{
			"status":     model.SubscriptionStatusExpired,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return nil, err
	}

	return userIDs, nil
}
