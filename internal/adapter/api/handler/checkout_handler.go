package handler

import (
	"github.com/labstack/echo/v4"

	"luxuryline/internal/adapter/api/middleware"
	"luxuryline/internal/domain/entity"
	"luxuryline/internal/usecase"
	"luxuryline/pkg/errors"
	"luxuryline/pkg/response"
)

type CheckoutHandler struct {
	sessionUseCase *usecase.SessionUseCase
}

func NewCheckoutHandler(sessionUseCase *usecase.SessionUseCase) *CheckoutHandler {
	return &CheckoutHandler{
		sessionUseCase: sessionUseCase,
	}
}

// BeginCheckout answers CART_EMPTY with a redirect to the cart when there is
// nothing to buy.
func (h *CheckoutHandler) BeginCheckout(c echo.Context) error {
	session := h.session(c)

	checkout, err := h.sessionUseCase.BeginCheckout(session)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, newCheckoutView(checkout.State()))
}

func (h *CheckoutHandler) GetCheckout(c echo.Context) error {
	checkout, err := h.sessionUseCase.Checkout(h.session(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, newCheckoutView(checkout.State()))
}

func (h *CheckoutHandler) SubmitShipping(c echo.Context) error {
	checkout, err := h.sessionUseCase.Checkout(h.session(c))
	if err != nil {
		return response.Error(c, err)
	}

	info := entity.DefaultShippingInfo()
	if err := c.Bind(&info); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	state, err := checkout.SubmitShipping(info)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, newCheckoutView(state))
}

// SubmitPayment returns 202 while the payment is being processed. Poll
// GetCheckout or listen on the websocket for the confirmation.
func (h *CheckoutHandler) SubmitPayment(c echo.Context) error {
	checkout, err := h.sessionUseCase.Checkout(h.session(c))
	if err != nil {
		return response.Error(c, err)
	}

	info := entity.PaymentInfo{SameAsShipping: true}
	if err := c.Bind(&info); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	state, err := checkout.SubmitPayment(info)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Accepted(c, newCheckoutView(state))
}

func (h *CheckoutHandler) Back(c echo.Context) error {
	checkout, err := h.sessionUseCase.Checkout(h.session(c))
	if err != nil {
		return response.Error(c, err)
	}

	state, err := checkout.Back()
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, newCheckoutView(state))
}

func (h *CheckoutHandler) CancelPayment(c echo.Context) error {
	checkout, err := h.sessionUseCase.Checkout(h.session(c))
	if err != nil {
		return response.Error(c, err)
	}

	cancelled := checkout.Cancel()

	return response.Success(c, map[string]interface{}{
		"cancelled": cancelled,
		"checkout":  newCheckoutView(checkout.State()),
	})
}

func (h *CheckoutHandler) session(c echo.Context) *usecase.Session {
	return h.sessionUseCase.Get(c.Request().Context(), middleware.SessionID(c))
}
