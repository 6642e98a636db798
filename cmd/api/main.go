package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/zelenagryadka/zelena-api/api/routes"
	"github.com/zelenagryadka/zelena-api/internal/auth"
	"github.com/zelenagryadka/zelena-api/internal/cart"
	"github.com/zelenagryadka/zelena-api/internal/checkout"
	"github.com/zelenagryadka/zelena-api/internal/favorites"
	"github.com/zelenagryadka/zelena-api/internal/orders"
	product "github.com/zelenagryadka/zelena-api/internal/products"
	"github.com/zelenagryadka/zelena-api/internal/users"
	"github.com/zelenagryadka/zelena-api/pkg/config"
	"github.com/zelenagryadka/zelena-api/pkg/db"
	"github.com/zelenagryadka/zelena-api/pkg/logger"
	"github.com/zelenagryadka/zelena-api/pkg/metrics"
	"github.com/zelenagryadka/zelena-api/pkg/migrate"
	"github.com/zelenagryadka/zelena-api/pkg/outbox"
	"github.com/zelenagryadka/zelena-api/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	// Redis is optional. Without it, rate limiting and the checkout lock are
	// disabled but the storefront keeps working.
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, rate limiting and checkout lock disabled")
	}

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)
	productRepo := product.NewRepository(gormDB)
	favoritesRepo := favorites.NewRepository(gormDB)
	cartRepo := cart.NewRepository(gormDB)
	ordersRepo := orders.NewRepository(gormDB)
	outboxService := outbox.NewService(outbox.NewRepository(gormDB), logg)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	productService, err := product.NewService(productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	favoritesService, err := favorites.NewService(favorites.ServiceParams{
		FavoritesRepo: favoritesRepo,
		ProductRepo:   productRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create favorites service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.ServiceParams{
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(ordersRepo, dbClient, outboxService)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	checkoutParams := checkout.ServiceParams{
		Tx:          dbClient,
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
		OrdersRepo:  ordersRepo,
		Outbox:      outboxService,
		Metrics:     metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer),
		Config:      cfg.Checkout,
		Logger:      logg,
	}
	if redisClient != nil {
		checkoutParams.Locker = redisClient
	}
	checkoutService, err := checkout.NewService(checkoutParams)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			HTTPMetrics: metrics.NewHTTPMetrics(prometheus.DefaultRegisterer),

			AuthService:      authService,
			ProductService:   productService,
			FavoritesService: favoritesService,
			CartService:      cartService,
			CheckoutService:  checkoutService,
			OrdersService:    ordersService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
