package repository

import (
	"context"
	"fmt"
	"najia-backend/internal/model"
	"time"

	"gorm.io/gorm"
)

var prayerColumns = map[string]string{
	"Subuh":   "completed_subuh",
	"Zohor":   "completed_zohor",
	"Asar":    "completed_asar",
	"Maghrib": "completed_maghrib",
	"Isya":    "completed_isya",
}

// ValidPrayerType reports whether the name maps to a qada counter.
func ValidPrayerType(prayerType string) bool {
	_, ok := prayerColumns[prayerType]
	return ok
}

type QadaRepository interface {
	Create(ctx context.Context, tracker *model.QadaTracker) error
	FindByUser(ctx context.Context, userID string) (*model.QadaTracker, error)
	// IncrementPrayer atomically bumps one prayer counter and returns the
	// refreshed tracker.
	IncrementPrayer(ctx context.Context, userID, prayerType string) (*model.QadaTracker, error)
}

type qadaRepoImpl struct {
	db *gorm.DB
}

func NewQadaRepository(db *gorm.DB) QadaRepository {
	return &qadaRepoImpl{
		db: db,
	}
}

func (r *qadaRepoImpl) Create(ctx context.Context, tracker *model.QadaTracker) error {
	return r.db.WithContext(ctx).Create(tracker).Error
}

func (r *qadaRepoImpl) FindByUser(ctx context.Context, userID string) (*model.QadaTracker, error) {
	var tracker model.QadaTracker
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&tracker).Error
	if err != nil {
		return nil, err
	}

	return &tracker, nil
}

func (r *qadaRepoImpl) IncrementPrayer(ctx context.Context, userID, prayerType string) (*model.QadaTracker, error) {
	column, ok := prayerColumns[prayerType]
	if !ok {
		return nil, fmt.Errorf("unknown prayer type %q", prayerType)
	}

	result := r.db.WithContext(ctx).Model(&model.QadaTracker{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			column:       gorm.Expr(column + " + 1"),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindByUser(ctx, userID)
}
