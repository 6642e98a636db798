package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	product "github.com/zelenagryadka/zelena-api/internal/products"
	"github.com/zelenagryadka/zelena-api/internal/seed"
	"github.com/zelenagryadka/zelena-api/pkg/config"
	"github.com/zelenagryadka/zelena-api/pkg/db"
	"github.com/zelenagryadka/zelena-api/pkg/logger"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	file := flag.String("file", "", "path to the products feed JSON (defaults to config)")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	path := *file
	if path == "" {
		path = cfg.Seed.ProductsFile
	}

	feed, err := os.Open(path)
	requireResource(ctx, logg, "feed file", err)
	defer feed.Close()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	seeder, err := seed.NewSeeder(product.NewRepository(dbClient.DB()), logg)
	requireResource(ctx, logg, "seeder", err)

	report, err := seeder.Run(ctx, feed)
	if err != nil {
		for _, rowErr := range multierr.Errors(err) {
			fmt.Fprintln(os.Stderr, "row failed:", rowErr)
		}
	}

	fmt.Printf("inserted %d products, skipped %d\n", report.Inserted, report.Skipped)
	if err != nil {
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
