package service

import (
	"context"
	"fmt"
	"najia-backend/internal/apperr"
	"najia-backend/internal/dto"
	"najia-backend/internal/model"
	"najia-backend/internal/repository"
	"time"

	"github.com/google/uuid"
)

type UserService interface {
	// Resolve accepts either a primary-key id or an external auth uid and
	// returns the same user either way.
	Resolve(ctx context.Context, idOrUID string) (*model.User, error)
	CreateUser(ctx context.Context, firebaseUID, phoneNumber string) (*model.User, error)
	CompleteProfile(ctx context.Context, userID string, req *dto.CompleteProfileRequest) (*model.User, error)
	EditProfile(ctx context.Context, userID string, req *dto.EditProfileRequest) (*model.User, error)
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	UpdateAccountType(ctx context.Context, userID, accountType string) error
}

type userServiceImpl struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
	}
}

// Resolve tries the lookups in a fixed order: primary key first, then the
// external uid index. Both return the same entity shape.
func (s *userServiceImpl) Resolve(ctx context.Context, idOrUID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, idOrUID)
	if err == nil {
		return user, nil
	}
	if !repository.IsNotFoundErr(err) {
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	user, err = s.userRepo.FindByFirebaseUID(ctx, idOrUID)
	if repository.IsNotFoundErr(err) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find user by uid: %w", err)
	}
	return user, nil
}

func (s *userServiceImpl) CreateUser(ctx context.Context, firebaseUID, phoneNumber string) (*model.User, error) {
	existing, err := s.userRepo.FindByFirebaseUID(ctx, firebaseUID)
	if err == nil {
		return existing, nil
	}
	if !repository.IsNotFoundErr(err) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	user := &model.User{
		ID:          uuid.NewString(),
		FirebaseUID: firebaseUID,
		PhoneNumber: phoneNumber,
		AccountType: model.AccountTypeBasic,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userServiceImpl) CompleteProfile(ctx context.Context, userID string, req *dto.CompleteProfileRequest) (*model.User, error) {
	user, err := s.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	taken, err := s.userRepo.EmailTakenByOther(ctx, req.Email, user.ID)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, apperr.Conflict("email already in use")
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, apperr.Validation("date_of_birth must be YYYY-MM-DD")
	}

	user.Name = req.Name
	user.Email = req.Email
	user.DateOfBirth = &dob
	user.Gender = req.Gender
	user.IsProfileComplete = true

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return user, nil
}

func (s *userServiceImpl) EditProfile(ctx context.Context, userID string, req *dto.EditProfileRequest) (*model.User, error) {
	user, err := s.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		taken, err := s.userRepo.EmailTakenByOther(ctx, req.Email, user.ID)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, apperr.Conflict("email already in use")
		}
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, apperr.Validation("date_of_birth must be YYYY-MM-DD")
		}
		user.DateOfBirth = &dob
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return user, nil
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	return s.Resolve(ctx, userID)
}

func (s *userServiceImpl) UpdateAccountType(ctx context.Context, userID, accountType string) error {
	if accountType != model.AccountTypeBasic && accountType != model.AccountTypePremium {
		return apperr.Validation("unknown account type %q", accountType)
	}

	err := s.userRepo.UpdateAccountType(ctx, nil, userID, accountType)
	if repository.IsNotFoundErr(err) {
		return apperr.NotFound("user not found")
	}
	return err
}
