package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/repository"
	"github.com/spf13/cobra"
)

var (
	inviteRole string
	inviteName string
)

var inviteCmd = &cobra.Command{
	Use:   "invite EMAIL",
	Short: "Create an account that sets its own password",
	Long: `Create an active account without a password. The invitee chooses one
through POST /api/auth/set-password and can then log in.

Examples:
  cms invite editor@example.com --name "Editor"
  cms invite root@example.com --role ADMIN`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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
		user, err := invite(ctx, repos.Users, args[0], models.Role(strings.ToUpper(inviteRole)), inviteName)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "invited %s (%s) id=%s\n", user.Email, user.Role, user.ID)
		return nil
	},
}

func init() {
	inviteCmd.Flags().StringVar(&inviteRole, "role", string(models.RoleUser), "Role for the new account (USER or ADMIN)")
	inviteCmd.Flags().StringVar(&inviteName, "name", "", "Display name")
}

func invite(ctx context.Context, users repository.UserRepository, email string, role models.Role, name string) (*models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("email is required")
	}

	user := &models.User{Email: email, Role: role, IsActive: true}
	if name != "" {
		user.Name = &name
	}
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%s already has an account", email)
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	slog.Info("account invited", "user_id", user.ID.String(), "role", role)
	return user, nil
}
