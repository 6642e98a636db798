package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/zelenagryadka/zelena-api/pkg/db/models"
	pkgerrors "github.com/zelenagryadka/zelena-api/pkg/errors"
)

type cartRepository interface {
	FindItem(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	UpdateQty(ctx context.Context, id uuid.UUID, qty int) error
	DeleteItem(ctx context.Context, userID, productID uuid.UUID) error
	ListJoined(ctx context.Context, userID uuid.UUID) ([]ItemDTO, error)
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	CartRepo    cartRepository
	ProductRepo productLoader
}

// Service exposes cart mutations. Stored rows always carry qty >= 1.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	Add(ctx context.Context, userID, productID uuid.UUID, qty int) (*CartDTO, error)
	SetQty(ctx context.Context, userID, productID uuid.UUID, qty int) (*CartDTO, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) (*CartDTO, error)
}

type service struct {
	cartRepo    cartRepository
	productRepo productLoader
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
	}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return s.buildCart(ctx, userID)
}

// Add puts a product in the cart or bumps an existing row. Non-positive
// quantities are coerced up to one.
func (s *service) Add(ctx context.Context, userID, productID uuid.UUID, qty int) (*CartDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if qty < 1 {
		qty = 1
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	existing, err := s.cartRepo.FindItem(ctx, userID, productID)
	switch {
	case err == nil:
		if err := s.cartRepo.UpdateQty(ctx, existing.ID, existing.Qty+qty); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "bump cart row")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if _, err := s.cartRepo.Create(ctx, &models.CartItem{
			UserID:    userID,
			ProductID: productID,
			Qty:       qty,
		}); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart row")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart row")
	}

	return s.buildCart(ctx, userID)
}

// SetQty overwrites the quantity of an existing row. Zero or negative
// quantities delete the row.
func (s *service) SetQty(ctx context.Context, userID, productID uuid.UUID, qty int) (*CartDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	existing, err := s.cartRepo.FindItem(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart row")
	}

	if qty <= 0 {
		if err := s.cartRepo.DeleteItem(ctx, userID, productID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart row")
		}
	} else if err := s.cartRepo.UpdateQty(ctx, existing.ID, qty); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart row")
	}

	return s.buildCart(ctx, userID)
}

// Remove deletes the row if present; removing an absent row is not an error.
func (s *service) Remove(ctx context.Context, userID, productID uuid.UUID) (*CartDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.cartRepo.DeleteItem(ctx, userID, productID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart row")
	}
	return s.buildCart(ctx, userID)
}

func (s *service) buildCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	items, err := s.cartRepo.ListJoined(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart")
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal)
	}
	return &CartDTO{Items: items, Total: total}, nil
}
