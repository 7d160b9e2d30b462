package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"najia-backend/internal/apperr"
	"najia-backend/internal/client"
	"najia-backend/internal/ratelimit"
	"najia-backend/internal/repository"
	"time"
)

const (
	otpLength        = 6
	otpTTL           = 10 * time.Minute
	otpMaxAttempts   = 3
	otpMessageFormat = "Your Najia verification code is %s. It expires in 10 minutes."
)

type OtpService interface {
	// CreateAndSendSMS generates a fresh code and delivers it, subject to
	// the resend cooldown.
	CreateAndSendSMS(ctx context.Context, phoneNumber string) error
	// Verify consumes a code. Expired, mismatched, or over-tried codes
	// all fail.
	Verify(ctx context.Context, phoneNumber, code string) error
}

type otpServiceImpl struct {
	otpRepo   repository.OtpRepository
	smsSender client.SMSSender
	cooldowns ratelimit.CooldownStore
	now       func() time.Time
}

func NewOtpService(otpRepo repository.OtpRepository, smsSender client.SMSSender, cooldowns ratelimit.CooldownStore) OtpService {
	return &otpServiceImpl{
		otpRepo:   otpRepo,
		smsSender: smsSender,
		cooldowns: cooldowns,
		now:       time.Now,
	}
}

func (s *otpServiceImpl) CreateAndSendSMS(ctx context.Context, phoneNumber string) error {
	allowed, remaining, err := s.cooldowns.CheckAndRecordAttempt(ctx, phoneNumber)
	if err != nil {
		return fmt.Errorf("check resend cooldown: %w", err)
	}
	if !allowed {
		return apperr.Validation("please wait %d seconds before requesting another code",
			int(remaining.Seconds())+1)
	}

	code, err := generateOtpCode(otpLength)
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	if err := s.otpRepo.Upsert(ctx, phoneNumber, code, s.now().Add(otpTTL)); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	if err := s.smsSender.SendSMS(ctx, phoneNumber, fmt.Sprintf(otpMessageFormat, code)); err != nil {
		return fmt.Errorf("send otp sms: %w", err)
	}
	return nil
}

func (s *otpServiceImpl) Verify(ctx context.Context, phoneNumber, code string) error {
	otp, err := s.otpRepo.FindByContact(ctx, phoneNumber)
	if repository.IsNotFoundErr(err) {
		return apperr.Unauthorized("invalid or expired code")
	}
	if err != nil {
		return fmt.Errorf("load otp: %w", err)
	}

	if otp.Verified || otp.Attempts >= otpMaxAttempts || s.now().After(otp.ExpiresAt) {
		return apperr.Unauthorized("invalid or expired code")
	}

	if otp.Code != code {
		if err := s.otpRepo.IncrementAttempts(ctx, phoneNumber); err != nil {
			return fmt.Errorf("count attempt: %w", err)
		}
		return apperr.Unauthorized("invalid or expired code")
	}

	if err := s.otpRepo.MarkVerified(ctx, phoneNumber); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}

	// successful login clears the resend backoff
	if err := s.cooldowns.Reset(ctx, phoneNumber); err != nil {
		return fmt.Errorf("reset cooldown: %w", err)
	}
	return nil
}

func generateOtpCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
