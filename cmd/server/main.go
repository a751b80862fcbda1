package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cms",
	Short: "Blog/CMS REST backend",
	Long: `Blog/CMS REST backend with users, posts, categories and file uploads.

Commands:
  serve   - Run the HTTP server (default)
  seed    - Create the demo admin, user and categories
  invite  - Create an account that sets its own password`,
	SilenceUsage: true,
	RunE:         runServe,
}

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&inMemory, "in-memory", false, "Run without PostgreSQL; data is lost on exit")
	rootCmd.AddCommand(serveCmd, seedCmd, inviteCmd)
}

// loadConfig reads the environment and checks the settings every command needs.
func loadConfig(needDB bool) (*config.Config, error) {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}
	if needDB && cfg.DBPassword == "" {
		return nil, errors.New("DB_PASSWORD environment variable is required")
	}
	return cfg, nil
}
