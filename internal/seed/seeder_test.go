package seed

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	product "github.com/zelenagryadka/zelena-api/internal/products"
	"github.com/zelenagryadka/zelena-api/pkg/db/models"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
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
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func buildSeeder(t *testing.T, db *gorm.DB) *Seeder {
	t.Helper()
	seeder, err := NewSeeder(product.NewRepository(db), nil)
	require.NoError(t, err)
	return seeder
}

func TestRunInsertsFeedItems(t *testing.T) {
	db := setupSeedTestDB(t)
	seeder := buildSeeder(t, db)

	feed := `[
	  {"name": "Насіння огірка 'Ніжин'", "description": "Ранній сорт", "supplier": "Агроном", "price": "25,50", "image": "ogirok.jpg"},
	  {"name": "Лопата штикова", "price": 199}
	]`

	report, err := seeder.Run(context.Background(), strings.NewReader(feed))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Inserted)
	assert.Zero(t, report.Skipped)

	var row models.Product
	require.NoError(t, db.Where("slug = ?", "насіння-огірка-ніжин").First(&row).Error)
	assert.Equal(t, "Ранній сорт", row.Description)
	require.NotNil(t, row.Supplier)
	assert.Equal(t, "Агроном", *row.Supplier)
	require.NotNil(t, row.Category)
	assert.Equal(t, "Насіння", *row.Category)
	require.NotNil(t, row.ImagePath)
	assert.Equal(t, "ogirok.jpg", *row.ImagePath)
	assert.Equal(t, "25.5", row.Price.String())
}

func TestRunSkipsNamelessItems(t *testing.T) {
	db := setupSeedTestDB(t)
	seeder := buildSeeder(t, db)

	feed := `[{"name": "  "}, {"name": "Кашпо"}]`
	report, err := seeder.Run(context.Background(), strings.NewReader(feed))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 1, report.Skipped)
}

func TestRunResolvesDuplicateSlugs(t *testing.T) {
	db := setupSeedTestDB(t)
	seeder := buildSeeder(t, db)

	feed := `[
	  {"name": "Лопата", "price": "100"},
	  {"name": "Лопата", "price": "120"},
	  {"name": "Лопата", "price": "140"}
	]`
	report, err := seeder.Run(context.Background(), strings.NewReader(feed))
	require.NoError(t, err)
	assert.Equal(t, 3, report.Inserted)

	var slugs []string
	require.NoError(t, db.Model(&models.Product{}).Order("slug ASC").Pluck("slug", &slugs).Error)
	assert.Equal(t, []string{"лопата", "лопата-2", "лопата-3"}, slugs)
}

func TestRunRejectsMalformedFeed(t *testing.T) {
	db := setupSeedTestDB(t)
	seeder := buildSeeder(t, db)

	_, err := seeder.Run(context.Background(), strings.NewReader(`{"not": "an array"}`))
	require.Error(t, err)
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`"25,50"`, "25.5"},
		{`"199.00"`, "199"},
		{`149`, "149"},
		{`" 12,5 "`, "12.5"},
		{`"договірна"`, "0"},
		{`null`, "0"},
		{`""`, "0"},
	}
	for _, tc := range cases {
		got := ParsePrice(json.RawMessage(tc.raw))
		assert.Equal(t, tc.want, got.String(), "raw %s", tc.raw)
	}
}

func TestInferCategory(t *testing.T) {
	cases := map[string]string{
		"Насіння огірка":            "Насіння",
		"Семена томата":             "Насіння",
		"Добриво азотне":            "Добрива",
		"Fertilizer NPK":            "Добрива",
		"Фунгіцид Квадріс":          "ЗЗР",
		"Інсектицид Актара":         "ЗЗР",
		"Ґрунт універсальний":       "Ґрунти/Субстрати",
		"Субстрат кокосовий":        "Ґрунти/Субстрати",
		"Горщик керамічний":         "Інвентар",
		"Кашпо підвісне":            "Інвентар",
		"Секатор садовий":           "Інше",
	}
	for name, want := range cases {
		assert.Equal(t, want, InferCategory(name), "name %s", name)
	}
}
