package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zelenagryadka/zelena-api/pkg/db/models"
	"github.com/zelenagryadka/zelena-api/pkg/enums"
)

// ItemDTO is one snapshotted line of a placed order.
type ItemDTO struct {
	ProductID *uuid.UUID      `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Qty       int             `json:"qty"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderDTO is the transport shape for a placed order with its items.
type OrderDTO struct {
	ID             uuid.UUID            `json:"id"`
	UserID         uuid.UUID            `json:"user_id"`
	Status         enums.OrderStatus    `json:"status"`
	PaymentMethod  enums.PaymentMethod  `json:"payment_method"`
	DeliveryMethod enums.DeliveryMethod `json:"delivery_method"`
	FullName       string               `json:"full_name"`
	Phone          string               `json:"phone"`
	City           string               `json:"city"`
	Address        string               `json:"address"`
	Comment        *string              `json:"comment,omitempty"`
	Items          []ItemDTO            `json:"items"`
	Total          decimal.Decimal      `json:"total"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// UpdateStatusRequest is the admin payload for moving an order through the
// workflow.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// FromModel converts a persisted order into its transport shape.
func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}

	items := make([]ItemDTO, 0, len(o.Items))
	total := decimal.Zero
	for _, item := range o.Items {
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Qty)))
		total = total.Add(lineTotal)
		items = append(items, ItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Qty:       item.Qty,
			LineTotal: lineTotal,
		})
	}

	return &OrderDTO{
		ID:             o.ID,
		UserID:         o.UserID,
		Status:         o.Status,
		PaymentMethod:  o.PaymentMethod,
		DeliveryMethod: o.DeliveryMethod,
		FullName:       o.FullName,
		Phone:          o.Phone,
		City:           o.City,
		Address:        o.Address,
		Comment:        o.Comment,
		Items:          items,
		Total:          total,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

// FromModels converts an order slice into transport shapes.
func FromModels(rows []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
