package repository

import (
	"context"
	"najia-backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type TaskRepository interface {
	Create(ctx context.Context, tx *gorm.DB, task *model.Task) error
	FindByID(ctx context.Context, taskID string) (*model.Task, error)
	FindActiveByChild(ctx context.Context, childID string) ([]*model.Task, error)
	// MarkCompleted transitions an incomplete task to completed; returns
	// gorm.ErrRecordNotFound if the task was already completed.
	MarkCompleted(ctx context.Context, taskID string) error
	// MarkValidated transitions a completed, unvalidated task inside the
	// caller's transaction.
	MarkValidated(ctx context.Context, tx *gorm.DB, taskID string) error
}

type taskRepoImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepoImpl{
		db: db,
	}
}

func (r *taskRepoImpl) Create(ctx context.Context, tx *gorm.DB, task *model.Task) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(task).Error
}

func (r *taskRepoImpl) FindByID(ctx context.Context, taskID string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", taskID, true).
		First(&task).Error
	if err != nil {
		return nil, err
	}

	return &task, nil
}

func (r *taskRepoImpl) FindActiveByChild(ctx context.Context, childID string) ([]*model.Task, error) {
	var tasks []*model.Task
	err := r.db.WithContext(ctx).
		Where("child_id = ? AND is_active = ?", childID, true).
		Order("assigned_date DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *taskRepoImpl) MarkCompleted(ctx context.Context, taskID string) error {
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND is_active = ?", taskID, true).
		Where("is_completed = ?", false).
		Updates(map[string]interface{}{
			"is_completed": true,
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *taskRepoImpl) MarkValidated(ctx context.Context, tx *gorm.DB, taskID string) error {
	if tx == nil {
		tx = r.db
	}

	result := tx.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND is_active = ?", taskID, true).
		Where("is_completed = ? AND is_validated = ?", true, false).
		Updates(map[string]interface{}{
			"is_validated": true,
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
