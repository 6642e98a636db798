package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/zelenagryadka/zelena-api/pkg/enums"
)

// Order captures a placed checkout with contact details snapshotted at
// creation time.
type Order struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index:orders_user_id_idx"`
	Status         enums.OrderStatus    `gorm:"column:status;type:text;not null;default:'created'"`
	PaymentMethod  enums.PaymentMethod  `gorm:"column:payment_method;type:text;not null"`
	DeliveryMethod enums.DeliveryMethod `gorm:"column:delivery_method;type:text;not null"`
	FullName       string               `gorm:"column:full_name;not null"`
	Phone          string               `gorm:"column:phone;not null"`
	City           string               `gorm:"column:city;not null"`
	Address        string               `gorm:"column:address;not null"`
	Comment        *string              `gorm:"column:comment"`
	Items          []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
