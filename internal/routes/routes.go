package routes

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/padondep/internal/cache"
	"github.com/yourorg/padondep/internal/handlers"
	"github.com/yourorg/padondep/internal/middleware"
	"github.com/yourorg/padondep/internal/osrm"
	"github.com/yourorg/padondep/internal/store"
)

// Register monta todo el API sobre la app fiber. db puede ser nil en
// tests (el health check lo salta).
func Register(app *fiber.App, st store.Store, db *sql.DB, osrmClient *osrm.Client) {
	app.Use(middleware.RequestID())

	api := app.Group("/api")

	api.Get("/health", handlers.NewHealthHandler(db).Health)

	userHandler := handlers.NewUserHandler(st)
	authHandler := handlers.NewAuthHandler(st)
	routeHandler := handlers.NewRouteHandler(st)

	// Usuarios
	api.Get("/users", userHandler.List)
	api.Get("/users/:id", userHandler.Get)
	api.Post("/users", middleware.StrictRateLimiter(), userHandler.Create)
	api.Delete("/users/:id", userHandler.Delete)

	// Autenticación (rate limiting estricto)
	api.Post("/auth/login", middleware.StrictRateLimiter(), authHandler.Login)
	api.Put("/users/:id/password", authHandler.RequireAuth(), authHandler.ChangePassword)

	// CRUD para la tabla `routes`
	api.Get("/routes", routeHandler.List)
	api.Get("/routes/:id", routeHandler.Get)
	api.Post("/routes", routeHandler.Create)
	api.Put("/routes/:id", routeHandler.Update)
	api.Delete("/routes/:id", routeHandler.Delete)

	// Proxy del proveedor de routing externo
	if osrmClient != nil {
		osrmCache := cache.New(30*time.Second, time.Minute)
		api.Get("/osrm-route", handlers.NewOSRMHandler(osrmClient, osrmCache).GetRoute)
	}
}
