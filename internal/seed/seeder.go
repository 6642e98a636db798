// Package seed imports the supplier product feed into the catalog. The feed
// is a JSON array scraped from supplier price lists, so field values are
// messy: prices arrive as strings with comma decimal separators, categories
// are absent and have to be inferred from the Ukrainian product names.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/zelenagryadka/zelena-api/pkg/db/models"
	"github.com/zelenagryadka/zelena-api/pkg/logger"
	"github.com/zelenagryadka/zelena-api/pkg/slug"
)

const slugRetryLimit = 100

type catalogWriter interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
}

// FeedItem is one row of the supplier feed.
type FeedItem struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Supplier    string          `json:"supplier"`
	Price       json.RawMessage `json:"price"`
	Image       string          `json:"image"`
}

// Report summarizes a seed run.
type Report struct {
	Inserted int
	Skipped  int
}

// Seeder loads feed items into the products table.
type Seeder struct {
	repo catalogWriter
	logg *logger.Logger
}

// NewSeeder builds a Seeder. The logger is optional.
func NewSeeder(repo catalogWriter, logg *logger.Logger) (*Seeder, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &Seeder{repo: repo, logg: logg}, nil
}

// Run decodes the feed and inserts every item with a non-empty name. Rows
// that fail are collected rather than aborting the run, so one bad item does
// not block the rest of the feed.
func (s *Seeder) Run(ctx context.Context, feed io.Reader) (Report, error) {
	var items []FeedItem
	if err := json.NewDecoder(feed).Decode(&items); err != nil {
		return Report{}, fmt.Errorf("decode feed: %w", err)
	}

	var report Report
	var rowErrs error
	for i, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			report.Skipped++
			continue
		}
		if err := s.insert(ctx, name, item); err != nil {
			rowErrs = multierr.Append(rowErrs, fmt.Errorf("item %d (%s): %w", i, name, err))
			report.Skipped++
			continue
		}
		report.Inserted++
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"inserted": report.Inserted,
			"skipped":  report.Skipped,
		})
		s.logg.Info(logCtx, "seed run finished")
	}
	return report, rowErrs
}

func (s *Seeder) insert(ctx context.Context, name string, item FeedItem) error {
	resolved, err := s.resolveSlug(ctx, slug.Make(name))
	if err != nil {
		return err
	}

	category := InferCategory(name)
	row := &models.Product{
		Name:        name,
		Slug:        resolved,
		Description: strings.TrimSpace(item.Description),
		Category:    &category,
		Price:       ParsePrice(item.Price),
	}
	if supplier := strings.TrimSpace(item.Supplier); supplier != "" {
		row.Supplier = &supplier
	}
	if item.Image != "" {
		image := item.Image
		row.ImagePath = &image
	}

	_, err = s.repo.Create(ctx, row)
	return err
}

// resolveSlug walks base, base-2, base-3, ... until a free slug is found.
// Duplicate names are common in the feed since suppliers list the same
// product under several package sizes.
func (s *Seeder) resolveSlug(ctx context.Context, base string) (string, error) {
	candidate := base
	for counter := 2; counter < slugRetryLimit; counter++ {
		taken, err := s.repo.SlugExists(ctx, candidate, nil)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = slug.WithSuffix(base, counter)
	}
	return "", fmt.Errorf("no free slug for %q", base)
}

// ParsePrice converts a raw feed price into a decimal. The feed mixes JSON
// numbers and strings, and string prices use the comma decimal separator.
// Anything unparseable becomes zero so the item still lands in the catalog
// for manual review.
func ParsePrice(raw json.RawMessage) decimal.Decimal {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return decimal.Zero
	}
	if unquoted, err := strconv.Unquote(text); err == nil {
		text = unquoted
	}
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", "."))
	value, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero
	}
	return value
}

var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"Насіння", []string{"насіння", "семена"}},
	{"Добрива", []string{"добрив", "fert"}},
	{"ЗЗР", []string{"фунгіцид", "фунгицид", "інсектицид", "гербіцид"}},
	{"Ґрунти/Субстрати", []string{"грунт", "ґрунт", "субстрат"}},
	{"Інвентар", []string{"горщик", "кашпо", "лоток"}},
}

// InferCategory guesses the category from Ukrainian keywords in the product
// name. Unmatched names go to "Інше".
func InferCategory(name string) string {
	lowered := strings.ToLower(name)
	for _, group := range categoryKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(lowered, keyword) {
				return group.category
			}
		}
	}
	return "Інше"
}
