package client

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"najia-backend/internal/config"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StripeClient wraps the handful of Stripe REST primitives the payment
// service needs. Promotion codes and coupons live entirely on Stripe's
// side; we never persist them locally.
type StripeClient interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error)
	RetrievePaymentIntent(ctx context.Context, intentID string) (*PaymentIntent, error)
	CreateCoupon(ctx context.Context, req *CreateCouponRequest) (*Coupon, error)
	CreatePromotionCode(ctx context.Context, couponID, code string) (*PromotionCode, error)
	FindActivePromotionCode(ctx context.Context, code string) (*PromotionCode, error)
	VerifyWebhookSignature(header string, body []byte) error
}

type PaymentIntent struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret"`
	Status       string            `json:"status"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Metadata     map[string]string `json:"metadata"`
}

type Coupon struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	PercentOff float64 `json:"percent_off"`
	AmountOff  int64   `json:"amount_off"`
	Valid      bool    `json:"valid"`
}

type PromotionCode struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Active bool   `json:"active"`
	Coupon Coupon `json:"coupon"`
}

type CreateCouponRequest struct {
	Name       string
	PercentOff float64 // percentage discount; mutually exclusive with AmountOff
	AmountOff  int64   // fixed discount in minor units
	Currency   string  // required with AmountOff
}

// WebhookEvent is the subset of a Stripe event we act on.
type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object PaymentIntent `json:"object"`
	} `json:"data"`
}

var ErrPromotionNotFound = fmt.Errorf("promotion code not found")

type stripeClientImpl struct {
	httpClient    *http.Client
	baseApiURL    string
	secretKey     string
	webhookSecret string
}

// signature timestamps older than this are rejected
const webhookTolerance = 5 * time.Minute

func NewStripeClient(cfg *config.Stripe) StripeClient {
	return &stripeClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:    cfg.BaseApiURL,
		secretKey:     cfg.SecretKey,
		webhookSecret: cfg.WebhookSecret,
	}
}

func (c *stripeClientImpl) CreatePaymentIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	for k, v := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var intent PaymentIntent
	if err := c.postForm(ctx, "/v1/payment_intents", form, &intent); err != nil {
		return nil, fmt.Errorf("stripe create payment intent: %w", err)
	}
	return &intent, nil
}

func (c *stripeClientImpl) RetrievePaymentIntent(ctx context.Context, intentID string) (*PaymentIntent, error) {
	var intent PaymentIntent
	if err := c.get(ctx, "/v1/payment_intents/"+url.PathEscape(intentID), nil, &intent); err != nil {
		return nil, fmt.Errorf("stripe retrieve payment intent: %w", err)
	}
	return &intent, nil
}

func (c *stripeClientImpl) CreateCoupon(ctx context.Context, req *CreateCouponRequest) (*Coupon, error) {
	form := url.Values{}
	form.Set("name", req.Name)
	form.Set("duration", "once")
	if req.PercentOff > 0 {
		form.Set("percent_off", strconv.FormatFloat(req.PercentOff, 'f', -1, 64))
	} else {
		form.Set("amount_off", strconv.FormatInt(req.AmountOff, 10))
		form.Set("currency", req.Currency)
	}

	var coupon Coupon
	if err := c.postForm(ctx, "/v1/coupons", form, &coupon); err != nil {
		return nil, fmt.Errorf("stripe create coupon: %w", err)
	}
	return &coupon, nil
}

func (c *stripeClientImpl) CreatePromotionCode(ctx context.Context, couponID, code string) (*PromotionCode, error) {
	form := url.Values{}
	form.Set("coupon", couponID)
	form.Set("code", code)

	var promo PromotionCode
	if err := c.postForm(ctx, "/v1/promotion_codes", form, &promo); err != nil {
		return nil, fmt.Errorf("stripe create promotion code: %w", err)
	}
	return &promo, nil
}

func (c *stripeClientImpl) FindActivePromotionCode(ctx context.Context, code string) (*PromotionCode, error) {
	query := url.Values{}
	query.Set("code", code)
	query.Set("active", "true")
	query.Set("limit", "1")

	var list struct {
		Data []PromotionCode `json:"data"`
	}
	if err := c.get(ctx, "/v1/promotion_codes", query, &list); err != nil {
		return nil, fmt.Errorf("stripe list promotion codes: %w", err)
	}
	if len(list.Data) == 0 {
		return nil, ErrPromotionNotFound
	}
	return &list.Data[0], nil
}

// VerifyWebhookSignature checks the Stripe-Signature header of a webhook
// delivery. The header carries t={unix},v1={hex hmac} where the signed
// content is "{t}.{body}".
func (c *stripeClientImpl) VerifyWebhookSignature(header string, body []byte) error {
	var timestamp int64
	var signatures []string

	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return fmt.Errorf("malformed signature timestamp")
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return fmt.Errorf("malformed signature header")
	}
	skew := time.Since(time.Unix(timestamp, 0))
	if skew < 0 {
		skew = -skew
	}
	if skew > webhookTolerance {
		return fmt.Errorf("signature timestamp outside tolerance")
	}

	expected := computeWebhookSignature(timestamp, body, c.webhookSecret)
	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return fmt.Errorf("no matching signature")
}

func computeWebhookSignature(timestamp int64, body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *stripeClientImpl) postForm(ctx context.Context, path string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *stripeClientImpl) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseApiURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	return c.do(req, out)
}

func (c *stripeClientImpl) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("stripe error %d: %s", resp.StatusCode, string(b))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode stripe response: %w", err)
	}
	return nil
}
