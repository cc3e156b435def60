package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"luxuryline/internal/adapter/api/middleware"
	"luxuryline/internal/domain/entity"
	"luxuryline/internal/usecase"
	"luxuryline/pkg/errors"
	"luxuryline/pkg/response"
	"luxuryline/pkg/utils"
)

type ProductHandler struct {
	catalogUseCase *usecase.CatalogUseCase
	sessionUseCase *usecase.SessionUseCase
}

func NewProductHandler(catalogUseCase *usecase.CatalogUseCase, sessionUseCase *usecase.SessionUseCase) *ProductHandler {
	return &ProductHandler{
		catalogUseCase: catalogUseCase,
		sessionUseCase: sessionUseCase,
	}
}

type ProductDetail struct {
	Product      entity.Product   `json:"product"`
	Related      []entity.Product `json:"related"`
	DefaultSize  string           `json:"defaultSize,omitempty"`
	DefaultColor string           `json:"defaultColor,omitempty"`
	InWishlist   bool             `json:"inWishlist"`
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	criteria, sortKey, err := CriteriaFromQuery(c)
	if err != nil {
		return response.Error(c, err)
	}

	listing := h.catalogUseCase.FilterProducts(criteria, sortKey)
	return response.Success(c, listing.Paginate(utils.GetPaginationParams(c)))
}

func (h *ProductHandler) GetFilterOptions(c echo.Context) error {
	return response.Success(c, h.catalogUseCase.FilterOptions())
}

func (h *ProductHandler) GetFeaturedProducts(c echo.Context) error {
	return response.Success(c, h.catalogUseCase.FeaturedProducts())
}

func (h *ProductHandler) GetOnSaleProducts(c echo.Context) error {
	return response.Success(c, h.catalogUseCase.OnSaleProducts())
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	productID, err := parseProductID(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	product, err := h.catalogUseCase.GetProduct(productID)
	if err != nil {
		return response.Error(c, err)
	}

	session := h.sessionUseCase.Get(c.Request().Context(), middleware.SessionID(c))
	size, color := usecase.DefaultSelection(product)

	return response.Success(c, ProductDetail{
		Product:      product,
		Related:      h.catalogUseCase.RelatedProducts(product),
		DefaultSize:  size,
		DefaultColor: color,
		InWishlist:   session.Wishlist.IsInWishlist(product.ID),
	})
}

func (h *ProductHandler) ListCategories(c echo.Context) error {
	return response.Success(c, h.catalogUseCase.Categories())
}

func (h *ProductHandler) ListCategoryProducts(c echo.Context) error {
	category, err := h.catalogUseCase.CategoryBySlug(c.Param("slug"))
	if err != nil {
		return response.Error(c, err)
	}

	criteria, sortKey, err := CriteriaFromQuery(c)
	if err != nil {
		return response.Error(c, err)
	}
	criteria.Category = category.Slug
	listing := h.catalogUseCase.FilterProducts(criteria, sortKey)

	return response.Success(c, map[string]interface{}{
		"category": category,
		"products": listing.Paginate(utils.GetPaginationParams(c)),
	})
}

// CriteriaFromQuery reads the listing query string. Prices are clamped into
// the catalog range and swapped when given in the wrong order.
func CriteriaFromQuery(c echo.Context) (entity.FilterCriteria, entity.SortKey, error) {
	criteria := entity.DefaultCriteria()

	if category := strings.TrimSpace(c.QueryParam("category")); category != "" {
		criteria.Category = category
	}
	criteria.Query = strings.TrimSpace(c.QueryParam("search"))

	minPrice, err := parsePrice(c.QueryParam("min_price"), entity.PriceFloor)
	if err != nil {
		return criteria, "", errors.BadRequest("min_price must be a number", err)
	}
	maxPrice, err := parsePrice(c.QueryParam("max_price"), entity.PriceCeiling)
	if err != nil {
		return criteria, "", errors.BadRequest("max_price must be a number", err)
	}
	minPrice, maxPrice = clampPrice(minPrice), clampPrice(maxPrice)
	if minPrice.GreaterThan(maxPrice) {
		minPrice, maxPrice = maxPrice, minPrice
	}
	criteria.MinPrice, criteria.MaxPrice = minPrice, maxPrice

	criteria.Colors = splitList(c.QueryParam("colors"))
	criteria.Sizes = splitList(c.QueryParam("sizes"))
	criteria.Materials = splitList(c.QueryParam("materials"))

	if criteria.OnSale, err = parseFlag(c.QueryParam("on_sale")); err != nil {
		return criteria, "", errors.BadRequest("on_sale must be true or false", err)
	}
	if criteria.Featured, err = parseFlag(c.QueryParam("featured")); err != nil {
		return criteria, "", errors.BadRequest("featured must be true or false", err)
	}

	return criteria, entity.ParseSortKey(c.QueryParam("sort")), nil
}

func parsePrice(raw string, fallback decimal.Decimal) (decimal.Decimal, error) {
	if raw == "" {
		return fallback, nil
	}
	return decimal.NewFromString(raw)
}

func clampPrice(p decimal.Decimal) decimal.Decimal {
	if p.LessThan(entity.PriceFloor) {
		return entity.PriceFloor
	}
	if p.GreaterThan(entity.PriceCeiling) {
		return entity.PriceCeiling
	}
	return p
}

func parseFlag(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func parseProductID(raw string) (int, error) {
	if raw == "" {
		return 0, errors.BadRequest("Product ID is required", nil)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.BadRequest("Product ID must be a number", err)
	}
	return id, nil
}
