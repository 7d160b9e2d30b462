package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"najia-backend/internal/apperr"
	"najia-backend/internal/client"
	"najia-backend/internal/dto"
	"najia-backend/internal/model"
	"najia-backend/internal/repository"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MinimumChargeAmount is the processor's smallest accepted transaction,
// in minor currency units. Discounts never push a charge below it.
const MinimumChargeAmount = 200

const paymentCurrency = "myr"

type PaymentService interface {
	CreateIntent(ctx context.Context, userID string, req *dto.CreateIntentRequest) (*dto.CreateIntentResponse, error)
	// Confirm checks the processor's verdict for an intent. The caller
	// must be the owner recorded in the intent metadata.
	Confirm(ctx context.Context, userID, intentID string) error
	ValidateVoucher(ctx context.Context, code string) (*dto.VoucherInfo, error)
	CreateVoucher(ctx context.Context, req *dto.CreateVoucherRequest) (*dto.VoucherInfo, error)
	HandleWebhook(ctx context.Context, signatureHeader string, body []byte) error
}

type DiscountResult struct {
	FinalAmount    int64
	DiscountAmount int64
}

type paymentServiceImpl struct {
	db           *gorm.DB
	stripeClient client.StripeClient
	paymentRepo  repository.PaymentRepository
	subRepo      repository.SubscriptionRepository
	webhookRepo  repository.WebhookEventRepository
	userRepo     repository.UserRepository
	now          func() time.Time
}

func NewPaymentService(
	db *gorm.DB,
	stripeClient client.StripeClient,
	paymentRepo repository.PaymentRepository,
	subRepo repository.SubscriptionRepository,
	webhookRepo repository.WebhookEventRepository,
	userRepo repository.UserRepository,
) PaymentService {
	return &paymentServiceImpl{
		db:           db,
		stripeClient: stripeClient,
		paymentRepo:  paymentRepo,
		subRepo:      subRepo,
		webhookRepo:  webhookRepo,
		userRepo:     userRepo,
		now:          time.Now,
	}
}

func (s *paymentServiceImpl) CreateIntent(ctx context.Context, userID string, req *dto.CreateIntentRequest) (*dto.CreateIntentResponse, error) {
	if req.Amount < 1 {
		return nil, apperr.Validation("amount must be positive")
	}

	discount, err := s.ComputeDiscountedAmount(ctx, req.Amount, req.VoucherCode)
	if err != nil {
		return nil, err
	}

	if discount.FinalAmount < MinimumChargeAmount {
		return nil, apperr.Validation("amount below minimum charge of %d", MinimumChargeAmount)
	}

	intent, err := s.stripeClient.CreatePaymentIntent(ctx, discount.FinalAmount, paymentCurrency, map[string]string{
		"uid":          userID,
		"plan_type":    req.PlanType,
		"voucher_code": req.VoucherCode,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	payment := &model.Payment{
		UserID:                userID,
		PlanType:              req.PlanType,
		Amount:                discount.FinalAmount,
		OriginalAmount:        req.Amount,
		DiscountAmount:        discount.DiscountAmount,
		VoucherCode:           req.VoucherCode,
		Status:                model.PaymentStatusPending,
		StripePaymentIntentID: intent.ID,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("store payment: %w", err)
	}

	return &dto.CreateIntentResponse{
		ID:             intent.ID,
		ClientSecret:   intent.ClientSecret,
		Amount:         discount.FinalAmount,
		DiscountAmount: discount.DiscountAmount,
	}, nil
}

func (s *paymentServiceImpl) Confirm(ctx context.Context, userID, intentID string) error {
	intent, err := s.stripeClient.RetrievePaymentIntent(ctx, intentID)
	if err != nil {
		return fmt.Errorf("retrieve payment intent: %w", err)
	}

	if intent.Metadata["uid"] != userID {
		return apperr.Unauthorized("payment intent belongs to a different user")
	}

	if intent.Status == "succeeded" {
		return s.completePayment(ctx, intentID, userID, intent.Metadata["plan_type"])
	}

	if err := s.paymentRepo.MarkStatusFromPending(ctx, nil, intentID, model.PaymentStatusFailed); err != nil && !repository.IsNotFoundErr(err) {
		return fmt.Errorf("mark payment failed: %w", err)
	}
	return fmt.Errorf("payment not completed, processor status %q", intent.Status)
}

// completePayment transitions pending → completed, renews the owner's
// subscription and upgrades the account. A payment already in a terminal
// state is left untouched so webhook redelivery cannot double-renew.
func (s *paymentServiceImpl) completePayment(ctx context.Context, intentID, userID, planType string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := s.paymentRepo.MarkStatusFromPending(ctx, tx, intentID, model.PaymentStatusCompleted)
		if repository.IsNotFoundErr(err) {
			// already terminal: idempotent no-op
			return nil
		}
		if err != nil {
			return fmt.Errorf("mark payment completed: %w", err)
		}

		if err := s.renewSubscription(ctx, tx, userID, planType); err != nil {
			return fmt.Errorf("renew subscription: %w", err)
		}

		if err := s.userRepo.UpdateAccountType(ctx, tx, userID, model.AccountTypePremium); err != nil {
			return fmt.Errorf("upgrade account: %w", err)
		}
		return nil
	})
}

// renewSubscription extends the one subscription row per user in place,
// or creates it. Yearly plans run 12 months, everything else 1 month.
func (s *paymentServiceImpl) renewSubscription(ctx context.Context, tx *gorm.DB, userID, planType string) error {
	months := 1
	if planType == "yearly" {
		months = 12
	}

	now := s.now()
	return s.subRepo.Upsert(ctx, tx, &model.Subscription{
		UserID:    userID,
		PlanType:  planType,
		StartDate: now,
		EndDate:   now.AddDate(0, months, 0),
		Status:    model.SubscriptionStatusActive,
	})
}

func (s *paymentServiceImpl) ValidateVoucher(ctx context.Context, code string) (*dto.VoucherInfo, error) {
	promo, err := s.stripeClient.FindActivePromotionCode(ctx, code)
	if err == client.ErrPromotionNotFound {
		return nil, apperr.NotFound("voucher %q not found or inactive", code)
	}
	if err != nil {
		return nil, fmt.Errorf("look up voucher: %w", err)
	}
	if !promo.Active || !promo.Coupon.Valid {
		return nil, apperr.NotFound("voucher %q not found or inactive", code)
	}

	info := &dto.VoucherInfo{Code: promo.Code}
	if promo.Coupon.PercentOff > 0 {
		info.DiscountType = "percentage"
		info.PercentOff = promo.Coupon.PercentOff
	} else {
		info.DiscountType = "fixed"
		info.AmountOff = promo.Coupon.AmountOff
	}
	return info, nil
}

// ComputeDiscountedAmount applies a voucher to a base amount. An invalid
// or missing code is not an error: checkout proceeds at full price.
func (s *paymentServiceImpl) ComputeDiscountedAmount(ctx context.Context, baseAmount int64, code string) (*DiscountResult, error) {
	if code == "" {
		return &DiscountResult{FinalAmount: baseAmount}, nil
	}

	voucher, err := s.ValidateVoucher(ctx, code)
	if err != nil {
		if apperr.IsNotFound(err) {
			log.Printf("voucher %q rejected, charging full price", code)
			return &DiscountResult{FinalAmount: baseAmount}, nil
		}
		return nil, err
	}

	var discount int64
	switch voucher.DiscountType {
	case "percentage":
		discount = decimal.NewFromInt(baseAmount).
			Mul(decimal.NewFromFloat(voucher.PercentOff)).
			Div(decimal.NewFromInt(100)).
			Round(0).
			IntPart()
	case "fixed":
		// capped so the charge never drops below the processor minimum
		discount = baseAmount - MinimumChargeAmount
		if voucher.AmountOff < discount {
			discount = voucher.AmountOff
		}
		if discount < 0 {
			discount = 0
		}
	}

	final := baseAmount - discount
	if final < MinimumChargeAmount {
		// never charge more than the undiscounted amount: a base already
		// under the floor keeps discount 0 and fails the floor check later
		final = MinimumChargeAmount
		if final > baseAmount {
			final = baseAmount
		}
		discount = baseAmount - final
	}

	return &DiscountResult{FinalAmount: final, DiscountAmount: discount}, nil
}

func (s *paymentServiceImpl) CreateVoucher(ctx context.Context, req *dto.CreateVoucherRequest) (*dto.VoucherInfo, error) {
	if req.Code == "" {
		return nil, apperr.Validation("voucher code is required")
	}
	if req.PercentOff <= 0 && req.AmountOff <= 0 {
		return nil, apperr.Validation("either percent_off or amount_off is required")
	}

	currency := req.Currency
	if currency == "" {
		currency = paymentCurrency
	}

	coupon, err := s.stripeClient.CreateCoupon(ctx, &client.CreateCouponRequest{
		Name:       req.Name,
		PercentOff: req.PercentOff,
		AmountOff:  req.AmountOff,
		Currency:   currency,
	})
	if err != nil {
		return nil, fmt.Errorf("create coupon: %w", err)
	}

	promo, err := s.stripeClient.CreatePromotionCode(ctx, coupon.ID, req.Code)
	if err != nil {
		return nil, fmt.Errorf("create promotion code: %w", err)
	}

	info := &dto.VoucherInfo{Code: promo.Code}
	if coupon.PercentOff > 0 {
		info.DiscountType = "percentage"
		info.PercentOff = coupon.PercentOff
	} else {
		info.DiscountType = "fixed"
		info.AmountOff = coupon.AmountOff
	}
	return info, nil
}

func (s *paymentServiceImpl) HandleWebhook(ctx context.Context, signatureHeader string, body []byte) error {
	if err := s.stripeClient.VerifyWebhookSignature(signatureHeader, body); err != nil {
		return apperr.Unauthorized("verify webhook signature: %v", err)
	}

	var event client.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode webhook payload: %w", err)
	}

	// webhooks are at-least-once: skip events we already processed
	seen, err := s.webhookRepo.Exists(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("check webhook event: %w", err)
	}
	if seen {
		return nil
	}

	switch event.Type {
	case "payment_intent.succeeded":
		intent := event.Data.Object
		userID := intent.Metadata["uid"]
		if userID == "" {
			return fmt.Errorf("missing uid metadata in intent %s", intent.ID)
		}
		if err := s.completePayment(ctx, intent.ID, userID, intent.Metadata["plan_type"]); err != nil {
			return err
		}
	case "payment_intent.payment_failed":
		err := s.paymentRepo.MarkStatusFromPending(ctx, nil, event.Data.Object.ID, model.PaymentStatusFailed)
		if err != nil && !repository.IsNotFoundErr(err) {
			return fmt.Errorf("mark payment failed: %w", err)
		}
	default:
		log.Printf("unhandled stripe event type %q", event.Type)
	}

	return s.webhookRepo.MarkProcessed(ctx, event.ID, event.Type)
}
