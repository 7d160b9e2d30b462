package repository

import (
	"context"
	"najia-backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type QadaPuasaRepository interface {
	Create(ctx context.Context, tracker *model.QadaPuasa) error
	FindByUser(ctx context.Context, userID string) (*model.QadaPuasa, error)
	// RecordDay increments the completed-day counter and appends a
	// history row in one transaction.
	RecordDay(ctx context.Context, userID, notes string, recordedAt time.Time) (*model.QadaPuasa, error)
	History(ctx context.Context, userID string) ([]*model.QadaPuasaHistory, error)
}

type qadaPuasaRepoImpl struct {
	db *gorm.DB
}

func NewQadaPuasaRepository(db *gorm.DB) QadaPuasaRepository {
	return &qadaPuasaRepoImpl{
		db: db,
	}
}

func (r *qadaPuasaRepoImpl) Create(ctx context.Context, tracker *model.QadaPuasa) error {
	return r.db.WithContext(ctx).Create(tracker).Error
}

func (r *qadaPuasaRepoImpl) FindByUser(ctx context.Context, userID string) (*model.QadaPuasa, error) {
	var tracker model.QadaPuasa
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&tracker).Error
	if err != nil {
		return nil, err
	}

	return &tracker, nil
}

func (r *qadaPuasaRepoImpl) RecordDay(ctx context.Context, userID, notes string, recordedAt time.Time) (*model.QadaPuasa, error) {
	var tracker model.QadaPuasa

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&tracker).Error; err != nil {
			return err
		}

		result := tx.Model(&model.QadaPuasa{}).
			Where("id = ?", tracker.ID).
			Updates(map[string]interface{}{
				"completed_days": gorm.Expr("completed_days + 1"),
				"updated_at":     time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}

		if err := tx.Create(&model.QadaPuasaHistory{
			QadaPuasaID: tracker.ID,
			Notes:       notes,
			RecordedAt:  recordedAt,
		}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", tracker.ID).First(&tracker).Error
	})
	if err != nil {
		return nil, err
	}

	return &tracker, nil
}

func (r *qadaPuasaRepoImpl) History(ctx context.Context, userID string) ([]*model.QadaPuasaHistory, error) {
	tracker, err := r.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var history []*model.QadaPuasaHistory
	err = r.db.WithContext(ctx).
		Where("qada_puasa_id = ?", tracker.ID).
		Order("recorded_at ASC").
		Find(&history).Error
	if err != nil {
		return nil, err
	}

	return history, nil
}
