package repository

import (
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"luxuryline/internal/domain/entity"
	"luxuryline/internal/domain/repository"
)

//go:embed data/catalog.yaml
var embeddedCatalog []byte

type catalogDocument struct {
	Categories []categoryRecord `yaml:"categories"`
	Products   []productRecord  `yaml:"products"`
}

type categoryRecord struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

type productRecord struct {
	ID            int      `yaml:"id"`
	Name          string   `yaml:"name"`
	Category      string   `yaml:"category"`
	Price         float64  `yaml:"price"`
	OriginalPrice *float64 `yaml:"original_price"`
	Description   string   `yaml:"description"`
	Images        []string `yaml:"images"`
	Sizes         []string `yaml:"sizes"`
	Colors        []string `yaml:"colors"`
	Materials     []string `yaml:"materials"`
	SetSize       string   `yaml:"set_size"`
	Featured      bool     `yaml:"featured"`
	OnSale        bool     `yaml:"on_sale"`
	Rating        float64  `yaml:"rating"`
	Reviews       int      `yaml:"reviews"`
}

type staticCatalogRepository struct {
	products   []entity.Product
	categories []entity.Category
}

// NewStaticCatalogRepository loads the dataset compiled into the binary.
func NewStaticCatalogRepository() (repository.CatalogRepository, error) {
	return NewCatalogRepositoryFromYAML(embeddedCatalog)
}

// NewCatalogRepositoryFromYAML parses and validates a catalog document.
func NewCatalogRepositoryFromYAML(data []byte) (repository.CatalogRepository, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if err := validateCatalog(doc); err != nil {
		return nil, err
	}

	repo := &staticCatalogRepository{
		products:   make([]entity.Product, 0, len(doc.Products)),
		categories: make([]entity.Category, 0, len(doc.Categories)),
	}
	for _, c := range doc.Categories {
		repo.categories = append(repo.categories, entity.Category{
			ID:          c.ID,
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
			Image:       c.Image,
		})
	}
	for _, p := range doc.Products {
		repo.products = append(repo.products, p.toEntity())
	}
	return repo, nil
}

func (r *staticCatalogRepository) Products() []entity.Product {
	out := make([]entity.Product, len(r.products))
	for i, p := range r.products {
		out[i] = p.Clone()
	}
	return out
}

func (r *staticCatalogRepository) Categories() []entity.Category {
	return append([]entity.Category(nil), r.categories...)
}

func (p productRecord) toEntity() entity.Product {
	product := entity.Product{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       decimal.NewFromFloat(p.Price),
		Description: p.Description,
		Images:      p.Images,
		Sizes:       p.Sizes,
		Colors:      p.Colors,
		Materials:   p.Materials,
		SetSize:     p.SetSize,
		Featured:    p.Featured,
		OnSale:      p.OnSale,
		Rating:      p.Rating,
		Reviews:     p.Reviews,
	}
	if p.OriginalPrice != nil {
		op := decimal.NewFromFloat(*p.OriginalPrice)
		product.OriginalPrice = &op
	}
	return product
}

func validateCatalog(doc catalogDocument) error {
	if len(doc.Products) == 0 {
		return fmt.Errorf("catalog has no products")
	}

	slugs := make(map[string]bool, len(doc.Categories))
	for _, c := range doc.Categories {
		if c.Slug == "" {
			return fmt.Errorf("category %d has no slug", c.ID)
		}
		slugs[c.Slug] = true
	}

	seen := make(map[int]bool, len(doc.Products))
	for _, p := range doc.Products {
		if seen[p.ID] {
			return fmt.Errorf("duplicate product id %d", p.ID)
		}
		seen[p.ID] = true

		if !entity.KnownCategory(p.Category) || !slugs[p.Category] {
			return fmt.Errorf("product %d has unknown category %q", p.ID, p.Category)
		}
		if len(p.Images) == 0 {
			return fmt.Errorf("product %d has no images", p.ID)
		}
		if p.Price < 0 {
			return fmt.Errorf("product %d has negative price", p.ID)
		}
		if p.OriginalPrice != nil && *p.OriginalPrice <= p.Price {
			return fmt.Errorf("product %d original price must exceed price", p.ID)
		}
		if p.Rating < 0 || p.Rating > 5 {
			return fmt.Errorf("product %d rating must be between 0 and 5", p.ID)
		}
	}
	return nil
}
