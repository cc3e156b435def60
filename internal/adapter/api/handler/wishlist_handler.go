package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"luxuryline/internal/adapter/api/middleware"
	"luxuryline/internal/domain/entity"
	"luxuryline/internal/usecase"
	"luxuryline/pkg/response"
)

type WishlistHandler struct {
	sessionUseCase *usecase.SessionUseCase
	catalogUseCase *usecase.CatalogUseCase
}

func NewWishlistHandler(sessionUseCase *usecase.SessionUseCase, catalogUseCase *usecase.CatalogUseCase) *WishlistHandler {
	return &WishlistHandler{
		sessionUseCase: sessionUseCase,
		catalogUseCase: catalogUseCase,
	}
}

type WishlistView struct {
	Items []entity.Product `json:"items"`
	Count int              `json:"count"`
}

func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	return response.Success(c, newWishlistView(h.wishlist(c)))
}

func (h *WishlistHandler) AddToWishlist(c echo.Context) error {
	productID, err := parseProductID(c.Param("productId"))
	if err != nil {
		return response.Error(c, err)
	}

	product, err := h.catalogUseCase.GetProduct(productID)
	if err != nil {
		return response.Error(c, err)
	}

	wishlist := h.wishlist(c)
	added, notification := wishlist.AddToWishlist(c.Request().Context(), product)

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	return response.WithNotification(c, status, newWishlistView(wishlist), notification)
}

func (h *WishlistHandler) RemoveFromWishlist(c echo.Context) error {
	productID, err := parseProductID(c.Param("productId"))
	if err != nil {
		return response.Error(c, err)
	}

	wishlist := h.wishlist(c)
	notification := wishlist.RemoveFromWishlist(c.Request().Context(), productID)

	return response.WithNotification(c, http.StatusOK, newWishlistView(wishlist), notificationOrNil(notification))
}

func (h *WishlistHandler) CheckWishlistStatus(c echo.Context) error {
	productID, err := parseProductID(c.Param("productId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"productId":  productID,
		"inWishlist": h.wishlist(c).IsInWishlist(productID),
	})
}

func (h *WishlistHandler) wishlist(c echo.Context) *usecase.WishlistUseCase {
	return h.sessionUseCase.Get(c.Request().Context(), middleware.SessionID(c)).Wishlist
}

func newWishlistView(wishlist *usecase.WishlistUseCase) WishlistView {
	return WishlistView{
		Items: wishlist.Items(),
		Count: wishlist.Count(),
	}
}
