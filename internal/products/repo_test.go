package product

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/zelenagryadka/zelena-api/pkg/db/models"
	"github.com/zelenagryadka/zelena-api/pkg/enums"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL DEFAULT '',
  supplier TEXT,
  category TEXT,
  price NUMERIC NOT NULL,
  image_path TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	return db
}

func newCatalogProduct(t *testing.T, db *gorm.DB, name string, price string, mutate func(*models.Product)) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:          uuid.New(),
		Name:        name,
		Slug:        fmt.Sprintf("%s-%s", uuid.NewString()[:8], uuid.NewString()[:8]),
		Description: "test row",
		Price:       decimal.RequireFromString(price),
	}
	if mutate != nil {
		mutate(product)
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func strPtr(value string) *string {
	return &value
}

func decPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func TestRepositoryListFiltersByQuery(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	marker := uuid.NewString()[:8]
	match := newCatalogProduct(t, db, "Насіння огірка "+marker, "25.50", nil)
	newCatalogProduct(t, db, "Добриво універсальне", "99.00", nil)

	rows, err := repo.List(ctx, ListFilters{Query: marker})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, match.ID, rows[0].ID)
}

func TestRepositoryListFiltersByCategoryAndPrice(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	category := "cat-" + uuid.NewString()[:8]
	cheap := newCatalogProduct(t, db, "Cheap", "10.00", func(p *models.Product) { p.Category = &category })
	newCatalogProduct(t, db, "Expensive", "500.00", func(p *models.Product) { p.Category = &category })

	rows, err := repo.List(ctx, ListFilters{
		Category: &category,
		MaxPrice: decPtr("100"),
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, cheap.ID, rows[0].ID)
}

func TestRepositoryListSortsByPrice(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	supplier := "sup-" + uuid.NewString()[:8]
	mid := newCatalogProduct(t, db, "Mid", "50.00", func(p *models.Product) { p.Supplier = &supplier })
	low := newCatalogProduct(t, db, "Low", "5.00", func(p *models.Product) { p.Supplier = &supplier })
	high := newCatalogProduct(t, db, "High", "500.00", func(p *models.Product) { p.Supplier = &supplier })

	rows, err := repo.List(ctx, ListFilters{
		Supplier: &supplier,
		Sort:     enums.ProductSortPriceAsc,
	})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, low.ID, rows[0].ID)
	assert.Equal(t, mid.ID, rows[1].ID)
	assert.Equal(t, high.ID, rows[2].ID)
}

func TestRepositoryListAppliesSkipAndLimit(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	supplier := "sup-" + uuid.NewString()[:8]
	for i := 0; i < 5; i++ {
		newCatalogProduct(t, db, fmt.Sprintf("Row %d", i), "10.00", func(p *models.Product) { p.Supplier = &supplier })
	}

	rows, err := repo.List(ctx, ListFilters{Supplier: &supplier, Skip: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestRepositoryFacets(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	category := "facet-cat-" + uuid.NewString()[:8]
	supplier := "facet-sup-" + uuid.NewString()[:8]
	newCatalogProduct(t, db, "Facet row", "10.00", func(p *models.Product) {
		p.Category = &category
		p.Supplier = &supplier
	})

	facets, err := repo.Facets(ctx)
	require.NoError(t, err)
	assert.Contains(t, facets.Categories, category)
	assert.Contains(t, facets.Suppliers, supplier)
}

func TestRepositoryFindBySlug(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := newCatalogProduct(t, db, "By slug", "10.00", nil)

	found, err := repo.FindBySlug(ctx, product.Slug)
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)

	_, err = repo.FindBySlug(ctx, "missing-"+uuid.NewString())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositorySlugExists(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := newCatalogProduct(t, db, "Slug check", "10.00", nil)

	taken, err := repo.SlugExists(ctx, product.Slug, nil)
	require.NoError(t, err)
	assert.True(t, taken)

	// Excluding the owning row reports the slug as free.
	taken, err = repo.SlugExists(ctx, product.Slug, &product.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestRepositoryCreateUpdateDelete(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Product{
		Name:  "CRUD row",
		Slug:  "crud-" + uuid.NewString()[:8],
		Price: decimal.RequireFromString("12.34"),
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	created.Name = "Renamed"
	_, err = repo.Update(ctx, created)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", found.Name)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
