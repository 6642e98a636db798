package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zelenagryadka/zelena-api/api/controllers"
	"github.com/zelenagryadka/zelena-api/api/middleware"
	"github.com/zelenagryadka/zelena-api/internal/auth"
	"github.com/zelenagryadka/zelena-api/internal/cart"
	checkoutsvc "github.com/zelenagryadka/zelena-api/internal/checkout"
	"github.com/zelenagryadka/zelena-api/internal/favorites"
	"github.com/zelenagryadka/zelena-api/internal/orders"
	product "github.com/zelenagryadka/zelena-api/internal/products"
	"github.com/zelenagryadka/zelena-api/pkg/config"
	"github.com/zelenagryadka/zelena-api/pkg/db"
	"github.com/zelenagryadka/zelena-api/pkg/logger"
	"github.com/zelenagryadka/zelena-api/pkg/metrics"
	"github.com/zelenagryadka/zelena-api/pkg/redis"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	HTTPMetrics *metrics.HTTPMetrics

	AuthService      auth.Service
	ProductService   product.Service
	FavoritesService favorites.Service
	CartService      cart.Service
	CheckoutService  checkoutsvc.Service
	OrdersService    orders.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	var limiterStore middleware.RateLimiterStore
	if deps.Redis != nil {
		limiterStore = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, redisPinger(deps.Redis)))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, limiterStore, logg)).
				Post("/register", controllers.AuthRegister(deps.AuthService, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, limiterStore, logg)).
				Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.ProductService, logg))
			r.Get("/filters", controllers.ProductFilters(deps.ProductService, logg))
			r.Get("/slugs", controllers.ProductSlugs(deps.ProductService, logg))
			r.Get("/{slug}", controllers.ProductDetail(deps.ProductService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Get("/me", controllers.Me(deps.AuthService, logg))

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", controllers.FavoritesList(deps.FavoritesService, logg))
				r.Post("/", controllers.FavoritesAdd(deps.FavoritesService, logg))
				r.Delete("/{productId}", controllers.FavoritesRemove(deps.FavoritesService, logg))
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.CartService, logg))
				r.Post("/", controllers.CartAdd(deps.CartService, logg))
				r.Patch("/{productId}", controllers.CartSetQty(deps.CartService, logg))
				r.Delete("/{productId}", controllers.CartRemove(deps.CartService, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderList(deps.OrdersService, logg))
				r.Post("/", controllers.Checkout(deps.CheckoutService, logg))
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.RequireAdmin(logg))

			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateProduct(deps.ProductService, logg))
				r.Put("/{productId}", controllers.AdminUpdateProduct(deps.ProductService, logg))
				r.Delete("/{productId}", controllers.AdminDeleteProduct(deps.ProductService, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminOrderList(deps.OrdersService, logg))
				r.Patch("/{orderId}", controllers.AdminOrderUpdateStatus(deps.OrdersService, logg))
			})
		})
	})

	return r
}

// redisPinger keeps a nil *redis.Client from turning into a non-nil interface.
func redisPinger(client *redis.Client) interface{ Ping(ctx context.Context) error } {
	if client == nil {
		return nil
	}
	return client
}
