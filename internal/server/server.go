// Package server assembles the fiber application: global middleware, the
// shared error handler and the route table.
package server

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/storage"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/validation"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Deps are the backends the application runs on.
type Deps struct {
	Repos   repository.Repositories
	Storage storage.Storage
	// Pinger probes the database for /health; nil when running in memory.
	Pinger func(context.Context) error
}

// New builds the application. Every request goes through authenticate, then
// the route's guards, then validation in the handler, then the service.
func New(cfg *config.Config, deps Deps) *fiber.App {
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	v := validation.New()

	postService := services.NewPostService(deps.Repos.Posts, deps.Repos.Categories, deps.Repos.Files)
	h := routes.Handlers{
		Auth:   handlers.NewAuthHandler(services.NewAuthService(deps.Repos.Users, tokens), v),
		Health: handlers.NewHealthHandler(deps.Pinger),
		User:   handlers.NewUserHandler(services.NewUserService(deps.Repos.Users, deps.Repos.Files), v),
		Post: handlers.NewPostHandler(postService,
			services.NewPostImageService(deps.Repos.PostImages, postService, deps.Repos.Files), v),
		Category: handlers.NewCategoryHandler(services.NewCategoryService(deps.Repos.Categories), v),
		File: handlers.NewFileHandler(services.NewFileService(deps.Repos.Files, deps.Storage), v,
			cfg.UploadMaxBytes, cfg.UploadMaxFiles),
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimit(),
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.Authenticate(tokens))

	routes.Setup(app, h)
	return app
}
