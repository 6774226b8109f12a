package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/oksasatya/go-user-management/config"
	"github.com/oksasatya/go-user-management/internal/application"
	pginfra "github.com/oksasatya/go-user-management/internal/infrastructure/postgres"
	"github.com/oksasatya/go-user-management/pkg/apperror"
	"github.com/oksasatya/go-user-management/pkg/helpers"
)

var seedOpts struct {
	email    string
	password string
	name     string
	age      int
	roles    []string
}

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a user in the postgres store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

		ctx := context.Background()
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()

		svc := application.NewUserService(pginfra.NewUserRepository(pool), helpers.NewBcryptHasher(cfg.BcryptCost), logger)
		u, err := svc.Register(ctx, application.RegisterUserInput{
			Name:     seedOpts.name,
			Age:      seedOpts.age,
			Email:    seedOpts.email,
			Password: seedOpts.password,
			Roles:    seedOpts.roles,
		})
		if errors.Is(err, apperror.ErrBadRequest) {
			return fmt.Errorf("seed rejected: %w", err)
		}
		if err != nil {
			return err
		}
		cmd.Printf("seeded user: id=%d email=%s roles=%v\n", u.ID, u.Email, u.Roles)
		return nil
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&seedOpts.email, "email", "admin@example.com", "user email")
	f.StringVar(&seedOpts.password, "password", "password123", "plaintext password")
	f.StringVar(&seedOpts.name, "name", "Admin", "display name")
	f.IntVar(&seedOpts.age, "age", 30, "age in years")
	f.StringSliceVar(&seedOpts.roles, "role", []string{"Admin"}, "role to grant; repeatable")
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
