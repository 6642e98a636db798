package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zelenagryadka/zelena-api/pkg/db"
	"github.com/zelenagryadka/zelena-api/pkg/db/models"
	pkgerrors "github.com/zelenagryadka/zelena-api/pkg/errors"
	"github.com/zelenagryadka/zelena-api/pkg/slug"
)

// slugRetryLimit caps the collision counter when deriving slugs from names.
const slugRetryLimit = 50

// Service defines the catalog behavior needed by the controllers.
type Service interface {
	List(ctx context.Context, filters ListFilters) ([]ProductDTO, error)
	Facets(ctx context.Context) (*FacetsDTO, error)
	Slugs(ctx context.Context) ([]string, error)
	GetBySlug(ctx context.Context, slugValue string) (*ProductDTO, error)
	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type catalogRepository interface {
	List(ctx context.Context, filters ListFilters) ([]models.Product, error)
	Facets(ctx context.Context) (*FacetsDTO, error)
	Slugs(ctx context.Context) ([]string, error)
	FindBySlug(ctx context.Context, slugValue string) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	SlugExists(ctx context.Context, slugValue string, excludeID *uuid.UUID) (bool, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo catalogRepository
}

// NewService constructs a catalog service.
func NewService(repo catalogRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]ProductDTO, error) {
	rows, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return FromModels(rows), nil
}

func (s *service) Facets(ctx context.Context) (*FacetsDTO, error) {
	facets, err := s.repo.Facets(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list facets")
	}
	return facets, nil
}

func (s *service) Slugs(ctx context.Context) ([]string, error) {
	slugs, err := s.repo.Slugs(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list slugs")
	}
	return slugs, nil
}

func (s *service) GetBySlug(ctx context.Context, slugValue string) (*ProductDTO, error) {
	product, err := s.repo.FindBySlug(ctx, slugValue)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup product")
	}
	return FromModel(product), nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	slugValue, err := s.resolveSlug(ctx, input.Slug, input.Name, nil)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Slug:        slugValue,
		Description: strings.TrimSpace(input.Description),
		Supplier:    input.Supplier,
		Category:    input.Category,
		Price:       input.Price,
		ImagePath:   input.ImagePath,
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "products_slug_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "slug already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return FromModel(created), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup product")
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		candidate := slug.Make(*input.Slug)
		taken, err := s.repo.SlugExists(ctx, candidate, &id)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check slug")
		}
		if taken {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "slug already in use")
		}
		product.Slug = candidate
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Supplier != nil {
		product.Supplier = input.Supplier
	}
	if input.Category != nil {
		product.Category = input.Category
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.ImagePath != nil {
		product.ImagePath = input.ImagePath
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "products_slug_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "slug already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return FromModel(updated), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup product")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

// resolveSlug derives a unique slug. An explicit slug must be free; a derived
// one retries with a numeric suffix.
func (s *service) resolveSlug(ctx context.Context, explicit *string, name string, excludeID *uuid.UUID) (string, error) {
	if explicit != nil {
		candidate := slug.Make(*explicit)
		taken, err := s.repo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check slug")
		}
		if taken {
			return "", pkgerrors.New(pkgerrors.CodeConflict, "slug already in use")
		}
		return candidate, nil
	}

	base := slug.Make(name)
	candidate := base
	for counter := 2; counter < slugRetryLimit+2; counter++ {
		taken, err := s.repo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check slug")
		}
		if !taken {
			return candidate, nil
		}
		candidate = slug.WithSuffix(base, counter)
	}
	return "", pkgerrors.New(pkgerrors.CodeConflict, "could not derive a free slug")
}
