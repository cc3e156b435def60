package repository

import (
	"luxuryline/internal/domain/entity"
)

// CatalogRepository is the read-only product source. Implementations return
// records in dataset order and never mutate them.
type CatalogRepository interface {
	Products() []entity.Product
	Categories() []entity.Category
}
