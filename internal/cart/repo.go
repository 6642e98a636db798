package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/zelenagryadka/zelena-api/pkg/db/models"
)

// Repository exposes persistence operations for cart rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindItem loads the user's row for a product.
func (r *Repository) FindItem(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new cart row.
func (r *Repository) Create(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQty overwrites the quantity on an existing row.
func (r *Repository) UpdateQty(ctx context.Context, id uuid.UUID, qty int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", id).
		Update("qty", qty).Error
}

// DeleteItem removes the user's row for a product if present.
func (r *Repository) DeleteItem(ctx context.Context, userID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{}).Error
}

// DeleteAllForUser clears the user's cart. Called inside the checkout
// transaction so the clear commits atomically with the order.
func (r *Repository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}

// ListItems returns the raw cart rows for a user, oldest first.
func (r *Repository) ListItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var rows []models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type joinedRow struct {
	ProductID uuid.UUID       `gorm:"column:product_id"`
	Name      string          `gorm:"column:name"`
	Slug      string          `gorm:"column:slug"`
	Price     decimal.Decimal `gorm:"column:price"`
	ImagePath *string         `gorm:"column:image_path"`
	Qty       int             `gorm:"column:qty"`
}

// ListJoined returns cart rows joined with live product data. Rows whose
// product was deleted drop out via the join.
func (r *Repository) ListJoined(ctx context.Context, userID uuid.UUID) ([]ItemDTO, error) {
	var records []joinedRow
	err := r.db.WithContext(ctx).
		Table("cart_items ci").
		Select("ci.product_id, p.name, p.slug, p.price, p.image_path, ci.qty").
		Joins("JOIN products p ON p.id = ci.product_id").
		Where("ci.user_id = ?", userID).
		Order("ci.created_at ASC").
		Order("ci.id ASC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	items := make([]ItemDTO, 0, len(records))
	for _, record := range records {
		items = append(items, ItemDTO{
			ProductID: record.ProductID,
			Name:      record.Name,
			Slug:      record.Slug,
			Price:     record.Price,
			ImagePath: record.ImagePath,
			Qty:       record.Qty,
			LineTotal: record.Price.Mul(decimal.NewFromInt(int64(record.Qty))),
		})
	}
	return items, nil
}
