package repository

import (
	"context"
	"errors"
	"najia-backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByFirebaseUID(ctx context.Context, firebaseUID string) (*model.User, error)
	FindByPhone(ctx context.Context, phoneNumber string) (*model.User, error)
	EmailTakenByOther(ctx context.Context, email, excludeUserID string) (bool, error)
	Save(ctx context.Context, user *model.User) error
	UpdateAccountType(ctx context.Context, tx *gorm.DB, userID, accountType string) error
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepoImpl{
		db: db,
	}
}

func (r *userRepoImpl) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepoImpl) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) FindByFirebaseUID(ctx context.Context, firebaseUID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("firebase_uid = ?", firebaseUID).
		First(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) FindByPhone(ctx context.Context, phoneNumber string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("phone_number = ?", phoneNumber).
		First(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) EmailTakenByOther(ctx context.Context, email, excludeUserID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).
		Where("id <> ?", excludeUserID).
		Count(&count).Error

	return count > 0, err
}

func (r *userRepoImpl) Save(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepoImpl) UpdateAccountType(ctx context.Context, tx *gorm.DB, userID, accountType string) error {
	if tx == nil {
		tx = r.db
	}

	result := tx.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("account_type", accountType)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsNotFoundErr reports whether err is the storage layer's missing-row
// error.
func IsNotFoundErr(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
