package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Handlers groups everything the route table dispatches to.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	User     *handlers.UserHandler
	Post     *handlers.PostHandler
	Category *handlers.CategoryHandler
	File     *handlers.FileHandler
}

func perIP(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}

// Setup registers the route table. Identity is already resolved by the global
// Authenticate middleware; routes only add the guards they need.
func Setup(app *fiber.App, h Handlers) {
	app.Get("/health", h.Health.Check)

	// General API rate limiter: 120 req/min per IP
	api := app.Group("/api", perIP(120))

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth", perIP(10))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/set-password", h.Auth.SetPassword)
	auth.Get("/me", h.Auth.Me)

	requireAuth := middleware.RequireAuth()
	adminOnly := middleware.AdminRequired()

	users := api.Group("/users")
	users.Get("/public", h.User.ListPublic)
	users.Get("/public/:id", h.User.GetPublic)
	users.Patch("/profile", requireAuth, h.User.UpdateProfile)
	users.Get("/profile/:id", requireAuth, h.User.GetProfile)
	users.Patch("/profile/:id", requireAuth, h.User.UpdateProfile)
	users.Get("/", adminOnly, h.User.List)
	users.Get("/pending", adminOnly, h.User.ListPending)
	users.Post("/:id/approve", adminOnly, h.User.Approve)
	users.Post("/:id/deactivate", adminOnly, h.User.Deactivate)

	posts := api.Group("/posts")
	posts.Get("/", h.Post.List)
	posts.Post("/", requireAuth, h.Post.Create)
	posts.Get("/:postId/images", h.Post.ListImages)
	posts.Post("/:postId/images", requireAuth, h.Post.AddImage)
	posts.Delete("/:postId/images", requireAuth, h.Post.RemoveImage)
	posts.Put("/:id/cover", requireAuth, h.Post.SetCover)
	posts.Delete("/:id/cover", requireAuth, h.Post.ClearCover)
	posts.Get("/:id", h.Post.Get)
	posts.Patch("/:id", requireAuth, h.Post.Update)
	posts.Delete("/:id", requireAuth, h.Post.Delete)

	categories := api.Group("/categories")
	categories.Get("/", h.Category.List)
	categories.Get("/:id", h.Category.Get)
	categories.Post("/", adminOnly, h.Category.Create)
	categories.Delete("/:id", adminOnly, h.Category.Delete)

	files := api.Group("/files")
	files.Get("/", h.File.List)
	files.Post("/", requireAuth, h.File.Upload)
	files.Get("/:id/content", h.File.Content)
	files.Get("/:id", h.File.Get)
	files.Delete("/:id", requireAuth, h.File.Delete)
}
