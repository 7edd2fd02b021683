// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/studio-booking/internal/config"
	"github.com/iliyamo/studio-booking/internal/handler"
	"github.com/iliyamo/studio-booking/internal/middleware"
	"github.com/iliyamo/studio-booking/internal/model"
)

// Handlers groups every HTTP handler the API exposes.
type Handlers struct {
	Auth    *handler.AuthHandler
	Rooms   *handler.RoomHandler
	Slots   *handler.SlotHandler
	Content *handler.ContentHandler
	Leads   *handler.LeadHandler
	DB      handler.Pinger
}

// Deps carries the shared infrastructure used by route middleware.
type Deps struct {
	JWTSecret string
	Redis     *redis.Client // nil disables cache and rate limiting
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Log       *zap.Logger
}

// Register mounts health checks at the root and the API under /api/v1.
func Register(e *echo.Echo, h Handlers, d Deps) {
	e.GET("/healthz", handler.Health)
	if h.DB != nil {
		e.GET("/health", handler.Ready(h.DB))
	}

	api := e.Group("/api/v1", middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Log))
	strict := middleware.NewTokenBucket(d.RateLimit.WithCapacity(d.RateLimit.AuthCapacity, "strict"), d.Redis, d.Log)
	cached := middleware.NewRedisCache(d.Cache, d.Redis, d.Log)

	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register, strict)
	auth.POST("/login", h.Auth.Login, strict)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)
	api.GET("/me", h.Auth.Me, middleware.JWTAuth(d.JWTSecret))

	// Public catalog reads are cached; availability reads never are.
	api.GET("/rooms", h.Rooms.List, cached)
	api.GET("/rooms/:id", h.Rooms.Get, cached)
	api.GET("/contact", h.Content.Contact, cached)
	api.GET("/landing", h.Content.Landing, cached)

	api.GET("/rooms/:id/unavailable", h.Slots.ListDay)
	api.GET("/rooms/:id/unavailable-range", h.Slots.ListRange)
	api.GET("/rooms/:id/availability", h.Slots.Availability)
	api.POST("/leads", h.Leads.Capture, strict)

	admin := api.Group("/admin",
		middleware.JWTAuth(d.JWTSecret),
		middleware.RequireRole(model.RoleAdmin),
		middleware.InvalidateOnWrite(d.Cache, d.Redis, d.Log),
	)
	admin.POST("/unavailable", h.Slots.Create)
	admin.DELETE("/unavailable/:id", h.Slots.Delete)

	admin.GET("/rooms", h.Rooms.ListAll)
	admin.POST("/rooms", h.Rooms.Create)
	admin.PUT("/rooms/:id", h.Rooms.Update)
	admin.PATCH("/rooms/:id", h.Rooms.Patch)
	admin.DELETE("/rooms/:id", h.Rooms.Delete)

	admin.GET("/contact", h.Content.Contact)
	admin.PUT("/contact", h.Content.UpdateContact)
	admin.PUT("/landing", h.Content.UpdateLanding)
}
