package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/zelenagryadka/zelena-api/api/responses"
	"github.com/zelenagryadka/zelena-api/api/validators"
	product "github.com/zelenagryadka/zelena-api/internal/products"
	"github.com/zelenagryadka/zelena-api/pkg/enums"
	pkgerrors "github.com/zelenagryadka/zelena-api/pkg/errors"
	"github.com/zelenagryadka/zelena-api/pkg/logger"
)

// ProductList serves the public catalog listing with filters and sorting.
func ProductList(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		filters, err := parseListFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items, err := svc.List(ctx, filters)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

func parseListFilters(r *http.Request) (product.ListFilters, error) {
	query := r.URL.Query()
	filters := product.ListFilters{
		Query: strings.TrimSpace(query.Get("q")),
	}

	if category := strings.TrimSpace(query.Get("category")); category != "" {
		filters.Category = &category
	}
	if supplier := strings.TrimSpace(query.Get("supplier")); supplier != "" {
		filters.Supplier = &supplier
	}

	sort, err := enums.ParseProductSort(query.Get("sort"))
	if err != nil {
		return product.ListFilters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort")
	}
	filters.Sort = sort

	if raw := strings.TrimSpace(query.Get("min_price")); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return product.ListFilters{}, pkgerrors.New(pkgerrors.CodeValidation, "min_price must be numeric")
		}
		filters.MinPrice = &value
	}
	if raw := strings.TrimSpace(query.Get("max_price")); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return product.ListFilters{}, pkgerrors.New(pkgerrors.CodeValidation, "max_price must be numeric")
		}
		filters.MaxPrice = &value
	}

	skip, err := validators.ParseQueryInt(r, "skip", 0, 0, 1000000)
	if err != nil {
		return product.ListFilters{}, err
	}
	filters.Skip = skip

	limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 200)
	if err != nil {
		return product.ListFilters{}, err
	}
	filters.Limit = limit

	return filters, nil
}

// ProductFilters returns the distinct categories and suppliers for the
// storefront filter sidebar.
func ProductFilters(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		facets, err := svc.Facets(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, facets)
	}
}

// ProductSlugs lists every catalog slug, used for static page generation.
func ProductSlugs(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		slugs, err := svc.Slugs(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, slugs)
	}
}

// ProductDetail resolves one product by slug.
func ProductDetail(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "slug is required"))
			return
		}

		item, err := svc.GetBySlug(ctx, slug)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}
