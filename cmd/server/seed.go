package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/slug"
	"github.com/spf13/cobra"
)

const seedPassword = "ChangeMe123!"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the demo admin, user and categories",
	Long: `Create admin@ecn.local (ADMIN) and user@ecn.local (USER), both with the
password "ChangeMe123!", plus a few categories. Existing rows are left alone,
so the command can be run repeatedly.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(true)
		if err != nil {
			return err
		}
		repos, db, err := openRepositories(cfg)
		if err != nil {
			return err
		}
		if db != nil {
			defer database.Close(db)
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()
		return seed(ctx, repos)
	},
}

func seed(ctx context.Context, repos repository.Repositories) error {
	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		return err
	}

	for _, u := range []struct {
		email, name string
		role        models.Role
	}{
		{"admin@ecn.local", "Administrator", models.RoleAdmin},
		{"user@ecn.local", "Demo User", models.RoleUser},
	} {
		_, err := repos.Users.FindByEmail(ctx, u.email)
		if err == nil {
			slog.Info("seed user exists", "email", u.email)
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to look up %s: %w", u.email, err)
		}
		name, password := u.name, hash
		user := &models.User{Email: u.email, Name: &name, Password: &password, Role: u.role, IsActive: true}
		if err := repos.Users.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create %s: %w", u.email, err)
		}
		slog.Info("seed user created", "email", u.email, "role", u.role)
	}

	for _, name := range []string{"News", "Engineering", "Events"} {
		categorySlug := slug.Make(name)
		_, err := repos.Categories.FindBySlug(ctx, categorySlug)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to look up category %s: %w", categorySlug, err)
		}
		if err := repos.Categories.Create(ctx, &models.Category{Name: name, Slug: categorySlug}); err != nil {
			return fmt.Errorf("failed to create category %s: %w", categorySlug, err)
		}
		slog.Info("seed category created", "slug", categorySlug)
	}
	return nil
}
