package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zelenagryadka/zelena-api/pkg/db/models"
	"github.com/zelenagryadka/zelena-api/pkg/enums"
)

// ListFilters describe the supported filter knobs for the browse endpoint.
type ListFilters struct {
	Query    string
	Category *string
	Supplier *string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     enums.ProductSort
	Skip     int
	Limit    int
}

// FacetsDTO lists the distinct values available for catalog filtering.
type FacetsDTO struct {
	Categories []string `json:"categories"`
	Suppliers  []string `json:"suppliers"`
}

// ProductDTO is the transport shape for a catalog listing.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Supplier    *string         `json:"supplier,omitempty"`
	Category    *string         `json:"category,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImagePath   *string         `json:"image_path,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateProductInput captures an admin create request. A missing slug is
// derived from the name.
type CreateProductInput struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Slug        *string         `json:"slug,omitempty" validate:"omitempty,min=1,max=200"`
	Description string          `json:"description" validate:"max=5000"`
	Supplier    *string         `json:"supplier,omitempty" validate:"omitempty,max=200"`
	Category    *string         `json:"category,omitempty" validate:"omitempty,max=200"`
	Price       decimal.Decimal `json:"price"`
	ImagePath   *string         `json:"image_path,omitempty" validate:"omitempty,max=500"`
}

// UpdateProductInput captures an admin partial update. Nil fields are left
// untouched.
type UpdateProductInput struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Slug        *string          `json:"slug,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=5000"`
	Supplier    *string          `json:"supplier,omitempty" validate:"omitempty,max=200"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,max=200"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	ImagePath   *string          `json:"image_path,omitempty" validate:"omitempty,max=500"`
}

// FromModel converts a persisted product into its transport shape.
func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Supplier:    p.Supplier,
		Category:    p.Category,
		Price:       p.Price,
		ImagePath:   p.ImagePath,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// FromModels converts a product slice into transport shapes.
func FromModels(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
