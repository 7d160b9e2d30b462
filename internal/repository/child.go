package repository

import (
	"context"
	"najia-backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ChildRepository interface {
	Create(ctx context.Context, tx *gorm.DB, child *model.Child) error
	FindByID(ctx context.Context, childID string) (*model.Child, error)
	FindByLoginCode(ctx context.Context, loginCode string) (*model.Child, error)
	FindByParent(ctx context.Context, parentID string) ([]*model.Child, error)
	// AwardStars adds stars and recomputes the level inside the caller's
	// transaction.
	AwardStars(ctx context.Context, tx *gorm.DB, childID string, stars int) error
}

type childRepoImpl struct {
	db *gorm.DB
}

func NewChildRepository(db *gorm.DB) ChildRepository {
	return &childRepoImpl{
		db: db,
	}
}

func (r *childRepoImpl) Create(ctx context.Context, tx *gorm.DB, child *model.Child) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(child).Error
}

func (r *childRepoImpl) FindByID(ctx context.Context, childID string) (*model.Child, error) {
	var child model.Child
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", childID, true).
		First(&child).Error
	if err != nil {
		return nil, err
	}

	return &child, nil
}

func (r *childRepoImpl) FindByLoginCode(ctx context.Context, loginCode string) (*model.Child, error) {
	var child model.Child
	err := r.db.WithContext(ctx).
		Where("login_code = ? AND is_active = ?", loginCode, true).
		First(&child).Error
	if err != nil {
		return nil, err
	}

	return &child, nil
}

func (r *childRepoImpl) FindByParent(ctx context.Context, parentID string) ([]*model.Child, error) {
	var children []*model.Child
	err := r.db.WithContext(ctx).
		Where("parent_id = ? AND is_active = ?", parentID, true).
		Order("created_at ASC").
		Find(&children).Error
	if err != nil {
		return nil, err
	}

	return children, nil
}

// levelStars is how many stars advance a child one level.
const levelStars = 50

func (r *childRepoImpl) AwardStars(ctx context.Context, tx *gorm.DB, childID string, stars int) error {
	if tx == nil {
		tx = r.db
	}

	result := tx.WithContext(ctx).Model(&model.Child{}).
		Where("id = ?", childID).
		Updates(map[string]interface{}{
			"stars":         gorm.Expr("stars + ?", stars),
			"current_level": gorm.Expr("(stars + ?) / ? + 1", stars, levelStars),
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
