package handler

import (
	"io"
	"net/http"

	"najia-backend/internal/dto"
	"najia-backend/internal/middleware"
	"najia-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateIntentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.paymentService.CreateIntent(ctx, middleware.UserID(c), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) ConfirmPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ConfirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.PaymentIntentID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "payment_intent_id is required")
	}

	if err := h.paymentService.Confirm(ctx, middleware.UserID(c), req.PaymentIntentID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "payment confirmed",
	})
}

func (h *PaymentHandler) ValidateVoucher(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ValidateVoucherRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code is required")
	}

	voucher, err := h.paymentService.ValidateVoucher(ctx, req.Code)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, voucher)
}

func (h *PaymentHandler) CreateVoucher(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateVoucherRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	voucher, err := h.paymentService.CreateVoucher(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, voucher)
}

// StripeWebhook consumes raw processor events. The body must stay
// untouched for signature verification, so no Bind here.
func (h *PaymentHandler) StripeWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read body")
	}

	signature := c.Request().Header.Get("Stripe-Signature")
	if err := h.paymentService.HandleWebhook(ctx, signature, body); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"received": "true",
	})
}
