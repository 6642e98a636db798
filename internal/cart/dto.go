package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemDTO is one cart row joined with live catalog data.
type ItemDTO struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Price     decimal.Decimal `json:"price"`
	ImagePath *string         `json:"image_path,omitempty"`
	Qty       int             `json:"qty"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartDTO is the full cart view returned to clients.
type CartDTO struct {
	Items []ItemDTO       `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// AddItemRequest is the payload for putting a product in the cart.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Qty       int       `json:"qty"`
}

// SetQtyRequest is the payload for adjusting an existing row.
type SetQtyRequest struct {
	Qty int `json:"qty"`
}
