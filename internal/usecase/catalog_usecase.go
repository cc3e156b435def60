package usecase

import (
	"sort"
	"strings"

	"luxuryline/internal/domain/entity"
	"luxuryline/internal/domain/repository"
	"luxuryline/pkg/errors"
	"luxuryline/pkg/utils"
)

const (
	relatedProductsLimit  = 4
	featuredProductsLimit = 4
	onSaleProductsLimit   = 3
)

// CatalogUseCase serves the read-only catalog. Filter options are computed
// once from the whole catalog so they never shrink while filters narrow the
// visible products.
type CatalogUseCase struct {
	products   []entity.Product
	categories []entity.Category
	byID       map[int]int
	options    entity.FilterOptions
}

func NewCatalogUseCase(catalogRepo repository.CatalogRepository) *CatalogUseCase {
	products := catalogRepo.Products()
	byID := make(map[int]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}

	return &CatalogUseCase{
		products:   products,
		categories: catalogRepo.Categories(),
		byID:       byID,
		options:    buildFilterOptions(products),
	}
}

// ProductListing is one run of the filter-sort pipeline. Total counts every
// match, not just the ones on this page.
type ProductListing struct {
	Items        []entity.Product `json:"items"`
	Total        int              `json:"total"`
	CatalogTotal int              `json:"catalogTotal"`
	Page         int              `json:"page"`
	Limit        int              `json:"limit"`
	TotalPages   int              `json:"totalPages"`
}

// FilterProducts narrows the catalog with every criterion (logical AND) and
// sorts the survivors stably. The catalog itself is never reordered. The
// result is a single page holding every match.
func (u *CatalogUseCase) FilterProducts(criteria entity.FilterCriteria, sortKey entity.SortKey) ProductListing {
	items := FilterAndSort(u.products, criteria, sortKey)
	listing := ProductListing{
		Items:        items,
		Total:        len(items),
		CatalogTotal: len(u.products),
		Page:         1,
		Limit:        len(items),
	}
	if len(items) > 0 {
		listing.TotalPages = 1
	}
	return listing
}

// Paginate cuts one page out of the listing. A page past the end is empty
// but keeps the totals.
func (l ProductListing) Paginate(p utils.PaginationParams) ProductListing {
	start := p.Offset
	if start > len(l.Items) {
		start = len(l.Items)
	}
	end := start + p.PageSize
	if end > len(l.Items) {
		end = len(l.Items)
	}

	l.Items = l.Items[start:end:end]
	l.Page = p.Page
	l.Limit = p.PageSize
	l.TotalPages = p.TotalPages(l.Total)
	return l
}

func (u *CatalogUseCase) FilterOptions() entity.FilterOptions {
	return entity.FilterOptions{
		Colors:    append([]string(nil), u.options.Colors...),
		Sizes:     append([]string(nil), u.options.Sizes...),
		Materials: append([]string(nil), u.options.Materials...),
		MinPrice:  u.options.MinPrice,
		MaxPrice:  u.options.MaxPrice,
	}
}

func (u *CatalogUseCase) GetProduct(id int) (entity.Product, error) {
	idx, ok := u.byID[id]
	if !ok {
		return entity.Product{}, errors.NotFound("Product", nil)
	}
	return u.products[idx].Clone(), nil
}

// RelatedProducts lists other products of the same category in catalog order.
func (u *CatalogUseCase) RelatedProducts(product entity.Product) []entity.Product {
	related := make([]entity.Product, 0, relatedProductsLimit)
	for _, p := range u.products {
		if len(related) == relatedProductsLimit {
			break
		}
		if p.Category == product.Category && p.ID != product.ID {
			related = append(related, p.Clone())
		}
	}
	return related
}

func (u *CatalogUseCase) FeaturedProducts() []entity.Product {
	return u.firstMatching(featuredProductsLimit, func(p entity.Product) bool { return p.Featured })
}

func (u *CatalogUseCase) OnSaleProducts() []entity.Product {
	return u.firstMatching(onSaleProductsLimit, func(p entity.Product) bool { return p.OnSale })
}

func (u *CatalogUseCase) Categories() []entity.Category {
	return append([]entity.Category(nil), u.categories...)
}

func (u *CatalogUseCase) CategoryBySlug(slug string) (entity.Category, error) {
	for _, c := range u.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return entity.Category{}, errors.NotFound("Category", nil)
}

// DefaultSelection is the size and color preselected on the detail view.
func DefaultSelection(product entity.Product) (size, color string) {
	if len(product.Sizes) > 0 {
		size = product.Sizes[0]
	}
	if len(product.Colors) > 0 {
		color = product.Colors[0]
	}
	return size, color
}

func (u *CatalogUseCase) firstMatching(limit int, keep func(entity.Product) bool) []entity.Product {
	out := make([]entity.Product, 0, limit)
	for _, p := range u.products {
		if len(out) == limit {
			break
		}
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// FilterAndSort is the pure pipeline behind FilterProducts. It returns a new
// slice and leaves products untouched.
func FilterAndSort(products []entity.Product, criteria entity.FilterCriteria, sortKey entity.SortKey) []entity.Product {
	predicates := buildPredicates(criteria)

	filtered := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if matchesAll(p, predicates) {
			filtered = append(filtered, p.Clone())
		}
	}

	sort.SliceStable(filtered, lessFunc(filtered, sortKey))
	return filtered
}

type predicate func(entity.Product) bool

func buildPredicates(criteria entity.FilterCriteria) []predicate {
	var predicates []predicate

	if criteria.Category != "" && criteria.Category != entity.CategoryAll {
		category := criteria.Category
		predicates = append(predicates, func(p entity.Product) bool {
			return p.Category == category
		})
	}

	if query := strings.ToLower(criteria.Query); query != "" {
		predicates = append(predicates, func(p entity.Product) bool {
			return strings.Contains(strings.ToLower(p.Name), query) ||
				strings.Contains(strings.ToLower(p.Description), query) ||
				strings.Contains(strings.ToLower(p.Category), query)
		})
	}

	minPrice, maxPrice := criteria.MinPrice, criteria.MaxPrice
	predicates = append(predicates, func(p entity.Product) bool {
		return p.Price.GreaterThanOrEqual(minPrice) && p.Price.LessThanOrEqual(maxPrice)
	})

	if len(criteria.Colors) > 0 {
		colors := toSet(criteria.Colors)
		predicates = append(predicates, func(p entity.Product) bool { return intersects(p.Colors, colors) })
	}
	if len(criteria.Sizes) > 0 {
		sizes := toSet(criteria.Sizes)
		predicates = append(predicates, func(p entity.Product) bool { return intersects(p.Sizes, sizes) })
	}
	if len(criteria.Materials) > 0 {
		materials := toSet(criteria.Materials)
		predicates = append(predicates, func(p entity.Product) bool { return intersects(p.Materials, materials) })
	}

	if criteria.OnSale {
		predicates = append(predicates, func(p entity.Product) bool { return p.OnSale })
	}
	if criteria.Featured {
		predicates = append(predicates, func(p entity.Product) bool { return p.Featured })
	}

	return predicates
}

func matchesAll(p entity.Product, predicates []predicate) bool {
	for _, keep := range predicates {
		if !keep(p) {
			return false
		}
	}
	return true
}

func lessFunc(products []entity.Product, sortKey entity.SortKey) func(i, j int) bool {
	switch sortKey {
	case entity.SortByPriceLow:
		return func(i, j int) bool { return products[i].Price.LessThan(products[j].Price) }
	case entity.SortByPriceHigh:
		return func(i, j int) bool { return products[i].Price.GreaterThan(products[j].Price) }
	case entity.SortByRating:
		return func(i, j int) bool { return products[i].Rating > products[j].Rating }
	case entity.SortByNewest:
		return func(i, j int) bool { return products[i].ID > products[j].ID }
	default:
		return func(i, j int) bool { return products[i].Name < products[j].Name }
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func intersects(values []string, set map[string]struct{}) bool {
	for _, v := range values {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

func buildFilterOptions(products []entity.Product) entity.FilterOptions {
	return entity.FilterOptions{
		Colors:    uniqueValues(products, func(p entity.Product) []string { return p.Colors }),
		Sizes:     uniqueValues(products, func(p entity.Product) []string { return p.Sizes }),
		Materials: uniqueValues(products, func(p entity.Product) []string { return p.Materials }),
		MinPrice:  entity.PriceFloor,
		MaxPrice:  entity.PriceCeiling,
	}
}

// uniqueValues keeps first-seen order across the catalog.
func uniqueValues(products []entity.Product, attr func(entity.Product) []string) []string {
	seen := make(map[string]struct{})
	values := []string{}
	for _, p := range products {
		for _, v := range attr(p) {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			values = append(values, v)
		}
	}
	return values
}
