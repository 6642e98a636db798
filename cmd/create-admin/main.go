package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/zelenagryadka/zelena-api/internal/users"
	"github.com/zelenagryadka/zelena-api/pkg/config"
	"github.com/zelenagryadka/zelena-api/pkg/db"
	"github.com/zelenagryadka/zelena-api/pkg/db/models"
	"github.com/zelenagryadka/zelena-api/pkg/logger"
	"github.com/zelenagryadka/zelena-api/pkg/security"
)

const tempPasswordLength = 16

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "create-admin"})

	_ = godotenv.Load()

	nickname := flag.String("nickname", "", "admin nickname")
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password (generated when empty)")
	flag.Parse()

	if strings.TrimSpace(*email) == "" {
		fmt.Fprintln(os.Stderr, "missing -email")
		os.Exit(1)
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "create-admin",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	repo := users.NewRepository(dbClient.DB())
	normalizedEmail := strings.ToLower(strings.TrimSpace(*email))

	existing, err := repo.FindByEmail(ctx, normalizedEmail)
	switch {
	case err == nil:
		// Existing account: promote, and rotate the password when one was given.
		if err := repo.SetAdmin(ctx, existing.ID, true); err != nil {
			requireResource(ctx, logg, "promote user", err)
		}
		if *password != "" {
			hash, err := security.HashPassword(*password, cfg.Password)
			requireResource(ctx, logg, "hash password", err)
			if err := repo.UpdatePasswordHash(ctx, existing.ID, hash); err != nil {
				requireResource(ctx, logg, "update password", err)
			}
		}
		fmt.Printf("promoted %s to admin\n", normalizedEmail)

	case errors.Is(err, gorm.ErrRecordNotFound):
		name := strings.TrimSpace(*nickname)
		if name == "" {
			fmt.Fprintln(os.Stderr, "missing -nickname for new account")
			os.Exit(1)
		}

		plaintext := *password
		generated := false
		if plaintext == "" {
			plaintext, err = security.GenerateTempPassword(tempPasswordLength)
			requireResource(ctx, logg, "generate password", err)
			generated = true
		}

		hash, err := security.HashPassword(plaintext, cfg.Password)
		requireResource(ctx, logg, "hash password", err)

		created, err := repo.Create(ctx, &models.User{
			Nickname:     name,
			Email:        normalizedEmail,
			PasswordHash: hash,
			IsAdmin:      true,
		})
		requireResource(ctx, logg, "create user", err)

		fmt.Printf("created admin %s (%s)\n", created.Nickname, created.Email)
		if generated {
			fmt.Printf("temporary password: %s\n", plaintext)
		}

	default:
		requireResource(ctx, logg, "lookup user", err)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
