package favorites

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zelenagryadka/zelena-api/pkg/db/models"
	pkgerrors "github.com/zelenagryadka/zelena-api/pkg/errors"
)

type stubFavoritesRepo struct {
	added   [][2]uuid.UUID
	removed [][2]uuid.UUID
	rows    []models.Product
}

func (s *stubFavoritesRepo) AddItem(ctx context.Context, userID, productID uuid.UUID) error {
	s.added = append(s.added, [2]uuid.UUID{userID, productID})
	return nil
}

func (s *stubFavoritesRepo) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	s.removed = append(s.removed, [2]uuid.UUID{userID, productID})
	return nil
}

func (s *stubFavoritesRepo) ListProducts(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	return s.rows, nil
}

type stubProductLoader struct {
	product *models.Product
}

func (s *stubProductLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.product == nil || s.product.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.product, nil
}

func buildFavoritesService(t *testing.T, repo *stubFavoritesRepo, loader *stubProductLoader) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{FavoritesRepo: repo, ProductRepo: loader})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestServiceAddItemUnknownProduct(t *testing.T) {
	svc := buildFavoritesService(t, &stubFavoritesRepo{}, &stubProductLoader{})

	err := svc.AddItem(context.Background(), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestServiceAddItemRecordsLike(t *testing.T) {
	product := &models.Product{ID: uuid.New(), Name: "Likeable"}
	repo := &stubFavoritesRepo{}
	svc := buildFavoritesService(t, repo, &stubProductLoader{product: product})

	userID := uuid.New()
	if err := svc.AddItem(context.Background(), userID, product.ID); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if len(repo.added) != 1 || repo.added[0] != [2]uuid.UUID{userID, product.ID} {
		t.Fatalf("unexpected add calls %+v", repo.added)
	}
}

func TestServiceRemoveItemAlwaysSucceeds(t *testing.T) {
	repo := &stubFavoritesRepo{}
	svc := buildFavoritesService(t, repo, &stubProductLoader{})

	if err := svc.RemoveItem(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("remove item: %v", err)
	}
	if len(repo.removed) != 1 {
		t.Fatalf("expected one remove call, got %d", len(repo.removed))
	}
}

func TestServiceListRequiresUser(t *testing.T) {
	svc := buildFavoritesService(t, &stubFavoritesRepo{}, &stubProductLoader{})

	_, err := svc.List(context.Background(), uuid.Nil)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
