package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxuryline/internal/adapter/api"
	"luxuryline/internal/adapter/api/handler"
	"luxuryline/internal/adapter/api/middleware"
	"luxuryline/internal/adapter/repository"
	"luxuryline/internal/domain/entity"
	"luxuryline/internal/domain/service"
	"luxuryline/internal/infrastructure/ratelimit"
	"luxuryline/internal/infrastructure/websocket"
	"luxuryline/internal/usecase"
	"luxuryline/pkg/config"
	"luxuryline/pkg/response"
)

type testServer struct {
	e        *echo.Echo
	sessions *usecase.SessionUseCase
	hub      *websocket.Manager
}

type envelope struct {
	Success      bool                 `json:"success"`
	Data         json.RawMessage      `json:"data"`
	Notification *entity.Notification `json:"notification"`
	Error        *response.ErrorInfo  `json:"error"`
}

func setupServer(t *testing.T, paymentDelay time.Duration, limiters Limiters) *testServer {
	t.Helper()

	catalogRepo, err := repository.NewStaticCatalogRepository()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := websocket.NewManager()
	hub.Start(ctx)

	validator := api.NewValidator()
	sessions := usecase.NewSessionUseCase(
		repository.NewMemorySlotRepository(),
		hub,
		usecase.CheckoutDeps{
			Payments:  service.NewSimulatedPaymentService(paymentDelay),
			Validator: validator.Engine(),
		},
		time.Hour,
	)
	catalog := usecase.NewCatalogUseCase(catalogRepo)

	e := echo.New()
	e.Validator = validator
	Setup(e, Handlers{
		Health:    handler.NewHealthHandler(sessions),
		Product:   handler.NewProductHandler(catalog, sessions),
		Cart:      handler.NewCartHandler(sessions, catalog),
		Wishlist:  handler.NewWishlistHandler(sessions, catalog),
		Checkout:  handler.NewCheckoutHandler(sessions),
		Order:     handler.NewOrderHandler(sessions),
		WebSocket: handler.NewWebSocketHandler(hub),
	}, limiters)

	return &testServer{e: e, sessions: sessions, hub: hub}
}

func (s *testServer) do(t *testing.T, method, path, session string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if session != "" {
		req.Header.Set(middleware.SessionHeader, session)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v))
}

func TestHealthCheck(t *testing.T) {
	s := setupServer(t, 0, Limiters{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Server is running")
}

func TestSessionHeaderIssuedWhenMissing(t *testing.T) {
	s := setupServer(t, 0, Limiters{})

	rec, _ := s.do(t, http.MethodGet, "/v1/cart", "", nil)
	assert.Len(t, rec.Header().Get(middleware.SessionHeader), 36)

	rec, _ = s.do(t, http.MethodGet, "/v1/cart", "session-1", nil)
	assert.Equal(t, "session-1", rec.Header().Get(middleware.SessionHeader))
}

func TestListProducts(t *testing.T) {
	s := setupServer(t, 0, Limiters{})

	rec, env := s.do(t, http.MethodGet, "/v1/products?category=crockery&sort=price-low", "session-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listing usecase.ProductListing
	decode(t, env.Data, &listing)
	assert.Equal(t, 8, listing.Total)
	assert.Equal(t, 15, listing.CatalogTotal)
	assert.Equal(t, 6, listing.Items[0].ID)
}

func TestListProductsPaginates(t *testing.T) {
	s := setupServer(t, 0, Limiters{})

	_, env := s.do(t, http.MethodGet, "/v1/products?sort=price-low&page=2&limit=4", "session-1", nil)
	var listing usecase.ProductListing
	decode(t, env.Data, &listing)
	assert.Equal(t, 15, listing.Total)
	assert.Equal(t, 2, listing.Page)
	assert.Equal(t, 4, listing.Limit)
	assert.Equal(t, 4, listing.TotalPages)
	require.Len(t, listing.Items, 4)
	assert.Equal(t, 8, listing.Items[0].ID)

	_, env = s.do(t, http.MethodGet, "/v1/products", "session-1", nil)
	decode(t, env.Data, &listing)
	assert.Equal(t, 1, listing.Page)
	assert.Equal(t, 20, listing.Limit)
	assert.Len(t, listing.Items, 15)

	_, env = s.do(t, http.MethodGet, "/v1/categories/crockery/products?page=3&limit=4", "session-1", nil)
	var body struct {
		Products usecase.ProductListing `json:"products"`
	}
	decode(t, env.Data, &body)
	assert.Empty(t, body.Products.Items)
	assert.Equal(t, 8, body.Products.Total)
	assert.Equal(t, 2, body.Products.TotalPages)
}

func TestListProductsClampsAndSwapsPrices(t *testing.T) {
	s := setupServer(t, 0, Limiters{})

	_, env := s.do(t, http.MethodGet, "/v1/products?min_price=900&max_price=-5", "session-1", nil)

	var listing usecase.ProductListing
	decode(t, env.Data, &listing)
	assert.Equal(t, 15, listing.Total)
}

func TestListProductsBadQuery(t *testing.T) {
	s := setupServer(t, 0, Limiters{})

	rec, env := s.do(t, http.MethodGet, "/v1/products?on_sale=maybe", "session-1", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestCategoryProducts(t *testing.T) {
	s := setupServer(t, 0, Limiters{})

	rec, env := s.do(t, http.MethodGet, "/v1/categories/sneakers/products?colors=Red", "session-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Category entity.Category        `json:"category"`
		Products usecase.ProductListing `json:"products"`
	}
	decode(t, env.Data, &body)
	assert.Equal(t, "Sneakers", body.Category.Name)
	assert.Equal(t, 2, body.Products.Total)

	rec, _ = s.do(t, http.MethodGet, "/v1/categories/jewelry/products", "session-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductDetail(t *testing.T) {
	s := setupServer(t, 0, Limiters{})

	rec, env := s.do(t, http.MethodGet, "/v1/products/1", "session-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail handler.ProductDetail
	decode(t, env.Data, &detail)
	assert.Equal(t, "Elite High-Top Sneakers", detail.Product.Name)
	assert.Len(t, detail.Related, 4)
	assert.Equal(t, "US 7", detail.DefaultSize)
	assert.Equal(t, "White", detail.DefaultColor)
	assert.False(t, detail.InWishlist)

	rec, env = s.do(t, http.MethodGet, "/v1/products/999", "session-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", env.Error.Message)

	rec, _ = s.do(t, http.MethodGet, "/v1/products/abc", "session-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeaturedAndFilters(t *testing.T) {
	s := setupServer(t, 0, Limiters{})

	_, env := s.do(t, http.MethodGet, "/v1/products/featured", "session-1", nil)
	var featured []entity.Product
	decode(t, env.Data, &featured)
	assert.Len(t, featured, 4)

	_, env = s.do(t, http.MethodGet, "/v1/products/on-sale", "session-1", nil)
	var onSale []entity.Product
	decode(t, env.Data, &onSale)
	assert.Len(t, onSale, 3)

	_, env = s.do(t, http.MethodGet, "/v1/products/filters", "session-1", nil)
	var options entity.FilterOptions
	decode(t, env.Data, &options)
	assert.Contains(t, options.Colors, "Crystal Clear")
}

func TestCartFlow(t *testing.T) {
	s := setupServer(t, 0, Limiters{})
	add := map[string]interface{}{"product_id": 1, "size": "US 9", "color": "Black"}

	rec, env := s.do(t, http.MethodPost, "/v1/cart/items", "session-1", add)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Added to Cart", env.Notification.Title)

	_, env = s.do(t, http.MethodPost, "/v1/cart/items", "session-1", add)
	assert.Equal(t, "Item Updated", env.Notification.Title)

	var cart handler.CartView
	decode(t, env.Data, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "1-US 9-Black", cart.Items[0].Key)
	assert.Equal(t, 2, cart.ItemCount)
	assert.Equal(t, handler.PricingView{Subtotal: "700.00", Shipping: "0.00", Tax: "56.00", Total: "756.00"}, cart.Pricing)

	rec, env = s.do(t, http.MethodPut, "/v1/cart/items/1-US%209-Black", "session-1", map[string]int{"quantity": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Notification)
	assert.Equal(t, "Removed from Cart", env.Notification.Title)

	_, env = s.do(t, http.MethodGet, "/v1/cart", "session-1", nil)
	decode(t, env.Data, &cart)
	assert.Empty(t, cart.Items)
	assert.Equal(t, "15.00", cart.Pricing.Shipping)
}

func TestCartUpdateAndClear(t *testing.T) {
	s := setupServer(t, 0, Limiters{})
	s.do(t, http.MethodPost, "/v1/cart/items", "session-1", map[string]interface{}{"product_id": 6, "color": "Gold"})

	_, env := s.do(t, http.MethodPut, "/v1/cart/items/6-default-Gold", "session-1", map[string]int{"quantity": 3})
	assert.Nil(t, env.Notification)
	var cart handler.CartView
	decode(t, env.Data, &cart)
	assert.Equal(t, 3, cart.ItemCount)
	assert.Equal(t, "360.00", cart.Pricing.Subtotal)

	_, env = s.do(t, http.MethodDelete, "/v1/cart/items/6-default-Gold", "session-1", nil)
	assert.Equal(t, "Removed from Cart", env.Notification.Title)

	_, env = s.do(t, http.MethodDelete, "/v1/cart/items/6-default-Gold", "session-1", nil)
	assert.Nil(t, env.Notification)

	s.do(t, http.MethodPost, "/v1/cart/items", "session-1", map[string]interface{}{"product_id": 6})
	rec, env := s.do(t, http.MethodDelete, "/v1/cart", "session-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, env.Data, &cart)
	assert.Zero(t, cart.ItemCount)
}

func TestCartRejectsBadInput(t *testing.T) {
	s := setupServer(t, 0, Limiters{})

	rec, env := s.do(t, http.MethodPost, "/v1/cart/items", "session-1", map[string]interface{}{"size": "US 9"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	rec, _ = s.do(t, http.MethodPost, "/v1/cart/items", "session-1", map[string]interface{}{"product_id": 1, "size": "US 15"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = s.do(t, http.MethodPost, "/v1/cart/items", "session-1", map[string]interface{}{"product_id": 6, "size": "US 9"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Size is not available for this product", env.Error.Message)

	_, env = s.do(t, http.MethodGet, "/v1/cart", "session-1", nil)
	var cart handler.CartView
	decode(t, env.Data, &cart)
	assert.Empty(t, cart.Items)

	rec, _ = s.do(t, http.MethodPost, "/v1/cart/items", "session-1", map[string]interface{}{"product_id": 404})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = s.do(t, http.MethodPut, "/v1/cart/items/1-default-default", "session-1", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestWishlistFlow(t *testing.T) {
	s := setupServer(t, 0, Limiters{})

	rec, env := s.do(t, http.MethodPost, "/v1/wishlist/3", "session-1", nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Added to Wishlist", env.Notification.Title)

	rec, env = s.do(t, http.MethodPost, "/v1/wishlist/3", "session-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Already in Wishlist", env.Notification.Title)

	_, env = s.do(t, http.MethodGet, "/v1/wishlist/3/status", "session-1", nil)
	var status map[string]interface{}
	decode(t, env.Data, &status)
	assert.Equal(t, true, status["inWishlist"])

	_, env = s.do(t, http.MethodGet, "/v1/products/3", "session-1", nil)
	var detail handler.ProductDetail
	decode(t, env.Data, &detail)
	assert.True(t, detail.InWishlist)

	_, env = s.do(t, http.MethodDelete, "/v1/wishlist/3", "session-1", nil)
	assert.Equal(t, "Removed from Wishlist", env.Notification.Title)

	_, env = s.do(t, http.MethodDelete, "/v1/wishlist/3", "session-1", nil)
	assert.Nil(t, env.Notification)

	_, env = s.do(t, http.MethodGet, "/v1/wishlist", "session-1", nil)
	var wishlist handler.WishlistView
	decode(t, env.Data, &wishlist)
	assert.Zero(t, wishlist.Count)

	rec, _ = s.do(t, http.MethodPost, "/v1/wishlist/999", "session-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

var shippingBody = map[string]string{
	"firstName": "Ada",
	"lastName":  "Lovelace",
	"email":     "ada@example.com",
	"address":   "1 Analytical Way",
	"city":      "London",
	"state":     "LDN",
	"zipCode":   "10001",
}

var paymentBody = map[string]string{
	"cardholderName": "Ada Lovelace",
	"cardNumber":     "4242424242424242",
	"expiryDate":     "12/30",
	"cvv":            "123",
}

func TestCheckoutEmptyCartRedirects(t *testing.T) {
	s := setupServer(t, 0, Limiters{})

	rec, env := s.do(t, http.MethodPost, "/v1/checkout", "session-1", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CART_EMPTY", env.Error.Code)
	assert.Equal(t, map[string]interface{}{"redirect": "/cart"}, env.Error.Details)

	rec, env = s.do(t, http.MethodGet, "/v1/checkout", "session-1", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INVALID_STEP", env.Error.Code)
}

func TestCheckoutFlow(t *testing.T) {
	s := setupServer(t, 0, Limiters{})
	s.do(t, http.MethodPost, "/v1/cart/items", "session-1", map[string]interface{}{"product_id": 6, "color": "Black"})

	rec, env := s.do(t, http.MethodPost, "/v1/checkout", "session-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view handler.CheckoutView
	decode(t, env.Data, &view)
	assert.Equal(t, "shipping", view.StepName)
	assert.Equal(t, handler.PricingView{Subtotal: "120.00", Shipping: "15.00", Tax: "9.60", Total: "144.60"}, view.Pricing)

	incomplete := map[string]string{"lastName": "Lovelace"}
	rec, env = s.do(t, http.MethodPost, "/v1/checkout/shipping", "session-1", incomplete)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "firstName is required", env.Error.Message)

	rec, env = s.do(t, http.MethodPost, "/v1/checkout/shipping", "session-1", shippingBody)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, env.Data, &view)
	assert.Equal(t, "payment", view.StepName)
	assert.Equal(t, "US", view.Shipping.Country)

	rec, env = s.do(t, http.MethodPost, "/v1/checkout/payment", "session-1", paymentBody)
	require.Equal(t, http.StatusAccepted, rec.Code)
	decode(t, env.Data, &view)
	assert.True(t, view.Processing)

	checkout, err := s.sessions.Checkout(s.sessions.Get(context.Background(), "session-1"))
	require.NoError(t, err)
	select {
	case <-checkout.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("payment did not settle")
	}

	_, env = s.do(t, http.MethodGet, "/v1/checkout", "session-1", nil)
	decode(t, env.Data, &view)
	assert.Equal(t, "confirmation", view.StepName)
	require.NotNil(t, view.Confirmation)
	assert.True(t, strings.HasPrefix(view.Confirmation.OrderNumber, "LL"))
	assert.Equal(t, "144.60", view.Confirmation.Total)
	assert.Equal(t, "ada@example.com", view.Confirmation.Email)

	_, env = s.do(t, http.MethodGet, "/v1/cart", "session-1", nil)
	var cart handler.CartView
	decode(t, env.Data, &cart)
	assert.Empty(t, cart.Items)
}

func TestOrderHistory(t *testing.T) {
	s := setupServer(t, 0, Limiters{})

	rec, env := s.do(t, http.MethodGet, "/v1/orders", "session-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history struct {
		Orders []handler.OrderView `json:"orders"`
	}
	decode(t, env.Data, &history)
	assert.Empty(t, history.Orders)

	s.do(t, http.MethodPost, "/v1/cart/items", "session-1", map[string]interface{}{"product_id": 6, "color": "Black"})
	s.do(t, http.MethodPost, "/v1/checkout", "session-1", nil)
	s.do(t, http.MethodPost, "/v1/checkout/shipping", "session-1", shippingBody)
	rec, _ = s.do(t, http.MethodPost, "/v1/checkout/payment", "session-1", paymentBody)
	require.Equal(t, http.StatusAccepted, rec.Code)

	checkout, err := s.sessions.Checkout(s.sessions.Get(context.Background(), "session-1"))
	require.NoError(t, err)
	select {
	case <-checkout.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("payment did not settle")
	}

	_, env = s.do(t, http.MethodGet, "/v1/orders", "session-1", nil)
	decode(t, env.Data, &history)
	require.Len(t, history.Orders, 1)
	placed := history.Orders[0]
	assert.Equal(t, "144.60", placed.Total)
	assert.Equal(t, "144.60", placed.Pricing.Total)
	require.Len(t, placed.Items, 1)
	assert.Equal(t, 6, placed.Items[0].Product.ID)

	rec, env = s.do(t, http.MethodGet, "/v1/orders/"+placed.OrderNumber, "session-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Order handler.OrderView `json:"order"`
	}
	decode(t, env.Data, &detail)
	assert.Equal(t, placed.OrderNumber, detail.Order.OrderNumber)

	rec, env = s.do(t, http.MethodGet, "/v1/orders/missing", "session-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order not found", env.Error.Message)

	rec, _ = s.do(t, http.MethodGet, "/v1/orders/"+placed.OrderNumber, "session-2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckoutCancelAndBack(t *testing.T) {
	s := setupServer(t, time.Hour, Limiters{})
	s.do(t, http.MethodPost, "/v1/cart/items", "session-1", map[string]interface{}{"product_id": 1})
	s.do(t, http.MethodPost, "/v1/checkout", "session-1", nil)
	s.do(t, http.MethodPost, "/v1/checkout/shipping", "session-1", shippingBody)

	rec, _ := s.do(t, http.MethodPost, "/v1/checkout/payment", "session-1", paymentBody)
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec, env := s.do(t, http.MethodPost, "/v1/checkout/back", "session-1", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	rec, env = s.do(t, http.MethodDelete, "/v1/checkout", "session-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cancelled struct {
		Cancelled bool                 `json:"cancelled"`
		Checkout  handler.CheckoutView `json:"checkout"`
	}
	decode(t, env.Data, &cancelled)
	assert.True(t, cancelled.Cancelled)
	assert.Equal(t, "payment", cancelled.Checkout.StepName)
	assert.False(t, cancelled.Checkout.Processing)

	rec, env = s.do(t, http.MethodPost, "/v1/checkout/back", "session-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view handler.CheckoutView
	decode(t, env.Data, &view)
	assert.Equal(t, "shipping", view.StepName)

	_, env = s.do(t, http.MethodGet, "/v1/cart", "session-1", nil)
	var cart handler.CartView
	decode(t, env.Data, &cart)
	assert.Equal(t, 1, cart.ItemCount)
}

func TestRateLimit(t *testing.T) {
	s := setupServer(t, 0, Limiters{General: ratelimit.NewRateLimiter(0.001, 1)})

	rec, _ := s.do(t, http.MethodGet, "/v1/products", "session-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := s.do(t, http.MethodGet, "/v1/products", "session-1", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", env.Error.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	rec, _ = s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPaymentRateLimitFromConfig(t *testing.T) {
	limits := config.RateLimitConfig{PaymentPerMinute: 0.01, PaymentBurst: 1}
	s := setupServer(t, time.Hour, Limiters{
		Payment: ratelimit.NewRateLimiter(limits.PaymentPerMinute/60, limits.PaymentBurst),
	})
	s.do(t, http.MethodPost, "/v1/cart/items", "session-1", map[string]interface{}{"product_id": 1})
	s.do(t, http.MethodPost, "/v1/checkout", "session-1", nil)
	s.do(t, http.MethodPost, "/v1/checkout/shipping", "session-1", shippingBody)

	rec, _ := s.do(t, http.MethodPost, "/v1/checkout/payment", "session-1", paymentBody)
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec, env := s.do(t, http.MethodPost, "/v1/checkout/payment", "session-1", paymentBody)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", env.Error.Code)

	rec, _ = s.do(t, http.MethodGet, "/v1/checkout", "session-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodDelete, "/v1/checkout", "session-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebSocketReceivesNotifications(t *testing.T) {
	s := setupServer(t, 0, Limiters{})
	srv := httptest.NewServer(s.e)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws?session_id=session-ws"
	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.hub.ClientCount("session-ws") == 1 }, time.Second, 5*time.Millisecond)

	raw, _ := json.Marshal(map[string]interface{}{"product_id": 8})
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/cart/items", bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(middleware.SessionHeader, "session-ws")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg struct {
		Type string              `json:"type"`
		Data entity.Notification `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, websocket.MessageTypeNotification, msg.Type)
	assert.Equal(t, "Added to Cart", msg.Data.Title)
	assert.Equal(t, "Pure Porcelain Tea Set has been added to your cart", msg.Data.Description)
}
