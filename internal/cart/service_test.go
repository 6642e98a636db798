package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zelenagryadka/zelena-api/pkg/db/models"
	pkgerrors "github.com/zelenagryadka/zelena-api/pkg/errors"
)

type stubCartRepo struct {
	items map[uuid.UUID]*models.CartItem // keyed by product id
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{items: map[uuid.UUID]*models.CartItem{}}
}

func (s *stubCartRepo) FindItem(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	if item, ok := s.items[productID]; ok && item.UserID == userID {
		return item, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCartRepo) Create(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	s.items[item.ProductID] = item
	return item, nil
}

func (s *stubCartRepo) UpdateQty(ctx context.Context, id uuid.UUID, qty int) error {
	for _, item := range s.items {
		if item.ID == id {
			item.Qty = qty
		}
	}
	return nil
}

func (s *stubCartRepo) DeleteItem(ctx context.Context, userID, productID uuid.UUID) error {
	delete(s.items, productID)
	return nil
}

func (s *stubCartRepo) ListJoined(ctx context.Context, userID uuid.UUID) ([]ItemDTO, error) {
	out := make([]ItemDTO, 0, len(s.items))
	for productID, item := range s.items {
		out = append(out, ItemDTO{ProductID: productID, Qty: item.Qty})
	}
	return out, nil
}

type stubProductLoader struct {
	known map[uuid.UUID]*models.Product
}

func (s *stubProductLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if product, ok := s.known[id]; ok {
		return product, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func buildCartService(t *testing.T, repo *stubCartRepo, products ...*models.Product) Service {
	t.Helper()
	loader := &stubProductLoader{known: map[uuid.UUID]*models.Product{}}
	for _, product := range products {
		loader.known[product.ID] = product
	}
	svc, err := NewService(ServiceParams{CartRepo: repo, ProductRepo: loader})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestServiceAddCoercesQtyToOne(t *testing.T) {
	product := &models.Product{ID: uuid.New()}
	repo := newStubCartRepo()
	svc := buildCartService(t, repo, product)

	if _, err := svc.Add(context.Background(), uuid.New(), product.ID, -3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if repo.items[product.ID].Qty != 1 {
		t.Fatalf("expected qty coerced to 1, got %d", repo.items[product.ID].Qty)
	}
}

func TestServiceAddIncrementsExistingRow(t *testing.T) {
	product := &models.Product{ID: uuid.New()}
	repo := newStubCartRepo()
	svc := buildCartService(t, repo, product)
	userID := uuid.New()

	if _, err := svc.Add(context.Background(), userID, product.ID, 2); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := svc.Add(context.Background(), userID, product.ID, 3); err != nil {
		t.Fatalf("second add: %v", err)
	}
	if repo.items[product.ID].Qty != 5 {
		t.Fatalf("expected qty 5, got %d", repo.items[product.ID].Qty)
	}
}

func TestServiceAddUnknownProduct(t *testing.T) {
	svc := buildCartService(t, newStubCartRepo())

	_, err := svc.Add(context.Background(), uuid.New(), uuid.New(), 1)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestServiceSetQtyMissingRow(t *testing.T) {
	product := &models.Product{ID: uuid.New()}
	svc := buildCartService(t, newStubCartRepo(), product)

	_, err := svc.SetQty(context.Background(), uuid.New(), product.ID, 4)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestServiceSetQtyNonPositiveDeletesRow(t *testing.T) {
	cases := []struct {
		name string
		qty  int
	}{
		{name: "zero", qty: 0},
		{name: "negative", qty: -3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			product := &models.Product{ID: uuid.New()}
			repo := newStubCartRepo()
			svc := buildCartService(t, repo, product)
			userID := uuid.New()

			if _, err := svc.Add(context.Background(), userID, product.ID, 2); err != nil {
				t.Fatalf("add: %v", err)
			}
			if _, err := svc.SetQty(context.Background(), userID, product.ID, tc.qty); err != nil {
				t.Fatalf("set qty: %v", err)
			}
			if _, ok := repo.items[product.ID]; ok {
				t.Fatalf("expected row to be deleted")
			}
		})
	}
}

func TestServiceRemoveAbsentRowIsNoOp(t *testing.T) {
	svc := buildCartService(t, newStubCartRepo())

	if _, err := svc.Remove(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("remove: %v", err)
	}
}
