package repository

import (
	"context"
	"najia-backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OtpRepository interface {
	// Upsert replaces any previous code for the contact.
	Upsert(ctx context.Context, contact, code string, expiresAt time.Time) error
	FindByContact(ctx context.Context, contact string) (*model.Otp, error)
	IncrementAttempts(ctx context.Context, contact string) error
	MarkVerified(ctx context.Context, contact string) error
}

type otpRepoImpl struct {
	db *gorm.DB
}

func NewOtpRepository(db *gorm.DB) OtpRepository {
	return &otpRepoImpl{
		db: db,
	}
}

func (r *otpRepoImpl) Upsert(ctx context.Context, contact, code string, expiresAt time.Time) error {
	otp := model.Otp{
		Contact:   contact,
		Code:      code,
		ExpiresAt: expiresAt,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "contact"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"code":       code,
			"expires_at": expiresAt,
			"attempts":   0,
			"verified":   false,
			"updated_at": time.Now(),
		}),
	}).Create(&otp).Error
}

func (r *otpRepoImpl) FindByContact(ctx context.Context, contact string) (*model.Otp, error) {
	var otp model.Otp
	err := r.db.WithContext(ctx).
		Where("contact = ?", contact).
		First(&otp).Error
	if err != nil {
		return nil, err
	}

	return &otp, nil
}

func (r *otpRepoImpl) IncrementAttempts(ctx context.Context, contact string) error {
	return r.db.WithContext(ctx).Model(&model.Otp{}).
		Where("contact = ?", contact).
		Update("attempts", gorm.Expr("attempts + 1")).Error
}

func (r *otpRepoImpl) MarkVerified(ctx context.Context, contact string) error {
	return r.db.WithContext(ctx).Model(&model.Otp{}).
		Where("contact = ?", contact).
		Update("verified", true).Error
}
