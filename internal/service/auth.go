package service

import (
	"context"
	"fmt"
	"najia-backend/internal/config"
	"najia-backend/internal/dto"
	"najia-backend/internal/model"
	"najia-backend/internal/repository"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type AuthService interface {
	RequestOtp(ctx context.Context, phoneNumber string) error
	VerifyOtpAndLogin(ctx context.Context, phoneNumber, code string) (*dto.LoginResponse, error)
	// ParseToken validates a bearer token and returns the user id claim.
	ParseToken(tokenString string) (string, error)
}

type authServiceImpl struct {
	otpService  OtpService
	userService UserService
	userRepo    repository.UserRepository
	secret      []byte
	tokenTTL    time.Duration
}

func NewAuthService(otpService OtpService, userService UserService, userRepo repository.UserRepository, cfg *config.Auth) AuthService {
	return &authServiceImpl{
		otpService:  otpService,
		userService: userService,
		userRepo:    userRepo,
		secret:      []byte(cfg.JWTSecret),
		tokenTTL:    time.Duration(cfg.TokenTTLHrs) * time.Hour,
	}
}

func (s *authServiceImpl) RequestOtp(ctx context.Context, phoneNumber string) error {
	return s.otpService.CreateAndSendSMS(ctx, phoneNumber)
}

func (s *authServiceImpl) VerifyOtpAndLogin(ctx context.Context, phoneNumber, code string) (*dto.LoginResponse, error) {
	if err := s.otpService.Verify(ctx, phoneNumber, code); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByPhone(ctx, phoneNumber)
	isNewUser := repository.IsNotFoundErr(err)
	if err != nil && !isNewUser {
		return nil, fmt.Errorf("find user by phone: %w", err)
	}

	if isNewUser {
		user, err = s.userService.CreateUser(ctx, "phone:"+phoneNumber, phoneNumber)
		if err != nil {
			return nil, err
		}
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &dto.LoginResponse{
		Token:     token,
		IsNewUser: isNewUser,
		User: &dto.UserProfile{
			ID:                user.ID,
			PhoneNumber:       user.PhoneNumber,
			Email:             user.Email,
			Name:              user.Name,
			Gender:            user.Gender,
			IsProfileComplete: user.IsProfileComplete,
			AccountType:       user.AccountType,
		},
	}, nil
}

func (s *authServiceImpl) signToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"phone": user.PhoneNumber,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}
	if user.Email != "" {
		claims["email"] = user.Email
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *authServiceImpl) ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("missing sub claim")
	}
	return sub, nil
}
