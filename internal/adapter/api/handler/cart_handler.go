package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"luxuryline/internal/adapter/api/middleware"
	"luxuryline/internal/domain/entity"
	"luxuryline/internal/domain/service"
	"luxuryline/internal/usecase"
	"luxuryline/pkg/errors"
	"luxuryline/pkg/response"
)

type CartHandler struct {
	sessionUseCase *usecase.SessionUseCase
	catalogUseCase *usecase.CatalogUseCase
}

func NewCartHandler(sessionUseCase *usecase.SessionUseCase, catalogUseCase *usecase.CatalogUseCase) *CartHandler {
	return &CartHandler{
		sessionUseCase: sessionUseCase,
		catalogUseCase: catalogUseCase,
	}
}

type AddToCartRequest struct {
	ProductID int    `json:"product_id" validate:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type CartView struct {
	Items     []entity.LineItem `json:"items"`
	ItemCount int               `json:"itemCount"`
	Pricing   PricingView       `json:"pricing"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	cart := h.cart(c)
	return response.Success(c, newCartView(cart))
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.catalogUseCase.GetProduct(req.ProductID)
	if err != nil {
		return response.Error(c, err)
	}
	if !offered(product.Sizes, req.Size) {
		return response.Error(c, errors.BadRequest("Size is not available for this product", nil))
	}
	if !offered(product.Colors, req.Color) {
		return response.Error(c, errors.BadRequest("Color is not available for this product", nil))
	}

	cart := h.cart(c)
	_, notification := cart.AddToCart(c.Request().Context(), product, req.Size, req.Color)

	return response.WithNotification(c, http.StatusOK, newCartView(cart), notification)
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	key, err := lineItemKey(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	cart := h.cart(c)
	_, notification := cart.UpdateQuantity(c.Request().Context(), key, *req.Quantity)

	return response.WithNotification(c, http.StatusOK, newCartView(cart), notificationOrNil(notification))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	key, err := lineItemKey(c)
	if err != nil {
		return response.Error(c, err)
	}

	cart := h.cart(c)
	notification := cart.RemoveFromCart(c.Request().Context(), key)

	return response.WithNotification(c, http.StatusOK, newCartView(cart), notificationOrNil(notification))
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	cart := h.cart(c)
	cart.ClearCart(c.Request().Context())
	return response.Success(c, newCartView(cart))
}

func (h *CartHandler) cart(c echo.Context) *usecase.CartUseCase {
	return h.sessionUseCase.Get(c.Request().Context(), middleware.SessionID(c)).Cart
}

func newCartView(cart *usecase.CartUseCase) CartView {
	return CartView{
		Items:     cart.Items(),
		ItemCount: cart.GetCartItemsCount(),
		Pricing:   newPricingView(service.CalculatePricing(cart.GetCartTotal())),
	}
}

// offered accepts an empty selection. A product without the attribute
// offers nothing to select.
func offered(values []string, selected string) bool {
	if selected == "" {
		return true
	}
	for _, v := range values {
		if v == selected {
			return true
		}
	}
	return false
}

func lineItemKey(c echo.Context) (string, error) {
	key, err := url.PathUnescape(c.Param("key"))
	if err != nil {
		return "", errors.BadRequest("Invalid cart item key", err)
	}
	if key == "" {
		return "", errors.BadRequest("Cart item key is required", nil)
	}
	return key, nil
}

// notificationOrNil keeps a typed nil pointer out of the interface field.
func notificationOrNil(n *entity.Notification) interface{} {
	if n == nil {
		return nil
	}
	return n
}
