package service

import (
	"context"
	"fmt"
	"najia-backend/internal/apperr"
	"najia-backend/internal/dto"
	"najia-backend/internal/model"
	"najia-backend/internal/repository"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FamilyService covers the parent and child sides of task/reward
// management. Children authenticate with a short login code instead of an
// account.
type FamilyService interface {
	CreateChild(ctx context.Context, parentID string, req *dto.CreateChildRequest) (*dto.ChildInfo, error)
	ListChildren(ctx context.Context, parentID string) ([]*dto.ChildInfo, error)
	AssignTask(ctx context.Context, parentID string, req *dto.AssignTaskRequest) (*dto.TaskInfo, error)
	// ValidateTask is the parent approving a completed task; stars are
	// awarded atomically with the validation.
	ValidateTask(ctx context.Context, parentID, taskID string) error

	ChildLogin(ctx context.Context, loginCode string) (*dto.ChildDashboard, error)
	ChildDashboard(ctx context.Context, childID string) (*dto.ChildDashboard, error)
	CompleteTask(ctx context.Context, loginCode, taskID string) error
}

type familyServiceImpl struct {
	db        *gorm.DB
	childRepo repository.ChildRepository
	taskRepo  repository.TaskRepository
	now       func() time.Time
}

func NewFamilyService(db *gorm.DB, childRepo repository.ChildRepository, taskRepo repository.TaskRepository) FamilyService {
	return &familyServiceImpl{
		db:        db,
		childRepo: childRepo,
		taskRepo:  taskRepo,
		now:       time.Now,
	}
}

func (s *familyServiceImpl) CreateChild(ctx context.Context, parentID string, req *dto.CreateChildRequest) (*dto.ChildInfo, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Validation("child name is required")
	}

	child := &model.Child{
		ID:           uuid.NewString(),
		ParentID:     parentID,
		Name:         strings.TrimSpace(req.Name),
		Age:          req.Age,
		LoginCode:    newLoginCode(),
		CurrentLevel: 1,
		IsActive:     true,
	}

	if err := s.childRepo.Create(ctx, nil, child); err != nil {
		return nil, fmt.Errorf("create child: %w", err)
	}

	return childInfoDTO(child, true), nil
}

func (s *familyServiceImpl) ListChildren(ctx context.Context, parentID string) ([]*dto.ChildInfo, error) {
	children, err := s.childRepo.FindByParent(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}

	infos := make([]*dto.ChildInfo, len(children))
	for i, child := range children {
		infos[i] = childInfoDTO(child, true)
	}
	return infos, nil
}

func (s *familyServiceImpl) AssignTask(ctx context.Context, parentID string, req *dto.AssignTaskRequest) (*dto.TaskInfo, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperr.Validation("task title is required")
	}
	if req.Stars < 0 {
		return nil, apperr.Validation("stars must not be negative")
	}

	child, err := s.childRepo.FindByID(ctx, req.ChildID)
	if repository.IsNotFoundErr(err) {
		return nil, apperr.NotFound("child not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load child: %w", err)
	}
	if child.ParentID != parentID {
		return nil, apperr.Unauthorized("child belongs to a different parent")
	}

	task := &model.Task{
		ID:           uuid.NewString(),
		ChildID:      child.ID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Stars:        req.Stars,
		IsActive:     true,
		AssignedDate: s.now(),
	}

	if err := s.taskRepo.Create(ctx, nil, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return taskInfoDTO(task), nil
}

func (s *familyServiceImpl) ValidateTask(ctx context.Context, parentID, taskID string) error {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if repository.IsNotFoundErr(err) {
		return apperr.NotFound("task not found")
	}
	if err != nil {
		return fmt.Errorf("load task: %w", err)
	}

	child, err := s.childRepo.FindByID(ctx, task.ChildID)
	if err != nil {
		return fmt.Errorf("load child: %w", err)
	}
	if child.ParentID != parentID {
		return apperr.Unauthorized("task belongs to a different parent's child")
	}

	// validation and reward commit together or not at all
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.taskRepo.MarkValidated(ctx, tx, taskID); err != nil {
			return err
		}
		return s.childRepo.AwardStars(ctx, tx, task.ChildID, task.Stars)
	})
	if repository.IsNotFoundErr(err) {
		return apperr.Conflict("task is not completed or already validated")
	}
	if err != nil {
		return fmt.Errorf("validate task: %w", err)
	}
	return nil
}

func (s *familyServiceImpl) ChildLogin(ctx context.Context, loginCode string) (*dto.ChildDashboard, error) {
	child, err := s.childRepo.FindByLoginCode(ctx, loginCode)
	if repository.IsNotFoundErr(err) {
		return nil, apperr.NotFound("invalid login code")
	}
	if err != nil {
		return nil, fmt.Errorf("child login: %w", err)
	}

	return s.dashboard(ctx, child)
}

func (s *familyServiceImpl) ChildDashboard(ctx context.Context, childID string) (*dto.ChildDashboard, error) {
	child, err := s.childRepo.FindByID(ctx, childID)
	if repository.IsNotFoundErr(err) {
		return nil, apperr.NotFound("child not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load child: %w", err)
	}

	return s.dashboard(ctx, child)
}

func (s *familyServiceImpl) dashboard(ctx context.Context, child *model.Child) (*dto.ChildDashboard, error) {
	tasks, err := s.taskRepo.FindActiveByChild(ctx, child.ID)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	dashboard := &dto.ChildDashboard{
		ChildInfo:      *childInfoDTO(child, false),
		PendingTasks:   []dto.TaskInfo{},
		CompletedTasks: []dto.TaskInfo{},
		ValidatedTasks: []dto.TaskInfo{},
	}
	for _, task := range tasks {
		info := *taskInfoDTO(task)
		switch {
		case task.IsValidated:
			dashboard.ValidatedTasks = append(dashboard.ValidatedTasks, info)
		case task.IsCompleted:
			dashboard.CompletedTasks = append(dashboard.CompletedTasks, info)
		default:
			dashboard.PendingTasks = append(dashboard.PendingTasks, info)
		}
	}
	return dashboard, nil
}

func (s *familyServiceImpl) CompleteTask(ctx context.Context, loginCode, taskID string) error {
	child, err := s.childRepo.FindByLoginCode(ctx, loginCode)
	if repository.IsNotFoundErr(err) {
		return apperr.NotFound("invalid login code")
	}
	if err != nil {
		return fmt.Errorf("child login: %w", err)
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if repository.IsNotFoundErr(err) {
		return apperr.NotFound("task not found")
	}
	if err != nil {
		return fmt.Errorf("load task: %w", err)
	}
	if task.ChildID != child.ID {
		return apperr.Unauthorized("task is assigned to a different child")
	}

	err = s.taskRepo.MarkCompleted(ctx, taskID)
	if repository.IsNotFoundErr(err) {
		return apperr.Conflict("task already completed")
	}
	if err != nil {
		return fmt.Errorf("complete task: %w", err)
	}
	return nil
}

// newLoginCode returns a short uppercase code children can type.
func newLoginCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

func childInfoDTO(child *model.Child, includeCode bool) *dto.ChildInfo {
	info := &dto.ChildInfo{
		ID:           child.ID,
		Name:         child.Name,
		Age:          child.Age,
		Stars:        child.Stars,
		CurrentLevel: child.CurrentLevel,
	}
	if includeCode {
		info.LoginCode = child.LoginCode
	}
	return info
}

func taskInfoDTO(task *model.Task) *dto.TaskInfo {
	return &dto.TaskInfo{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Stars:        task.Stars,
		IsCompleted:  task.IsCompleted,
		IsValidated:  task.IsValidated,
		AssignedDate: task.AssignedDate,
	}
}
