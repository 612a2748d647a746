// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/kostyrin/theatre-booking/internal/config"
	"github.com/kostyrin/theatre-booking/internal/handler"
	"github.com/kostyrin/theatre-booking/internal/middleware"
	"github.com/kostyrin/theatre-booking/internal/model"
)

// RegisterRoutes registers routes that need no authentication or
// shared state. Currently only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Register, login,
// refresh and logout live under /v1/auth and need no token; /v1/me sits
// behind JWTAuth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterCatalog registers the catalog resources. Reads are public and
// sit behind the Redis response cache and rate limiter; mutations
// require an authenticated ADMIN.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, jwtSecret string, rdb *redis.Client) {
	pub := e.Group("/v1",
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	)
	pub.GET("/actors", h.ListActors)
	pub.GET("/actors/:id", h.GetActor)
	pub.GET("/genres", h.ListGenres)
	pub.GET("/genres/:id", h.GetGenre)
	pub.GET("/plays", h.ListPlays)
	pub.GET("/plays/:id", h.GetPlay)
	pub.GET("/theatre-halls", h.ListHalls)
	pub.GET("/theatre-halls/:id", h.GetHall)
	pub.GET("/performances", h.ListPerformances)
	pub.GET("/performances/:id", h.GetPerformance)

	admin := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	admin.POST("/actors", h.CreateActor)
	admin.PUT("/actors/:id", h.UpdateActor)
	admin.DELETE("/actors/:id", h.DeleteActor)
	admin.POST("/genres", h.CreateGenre)
	admin.PUT("/genres/:id", h.UpdateGenre)
	admin.DELETE("/genres/:id", h.DeleteGenre)
	admin.POST("/plays", h.CreatePlay)
	admin.PUT("/plays/:id", h.UpdatePlay)
	admin.DELETE("/plays/:id", h.DeletePlay)
	admin.POST("/theatre-halls", h.CreateHall)
	admin.PUT("/theatre-halls/:id", h.UpdateHall)
	admin.DELETE("/theatre-halls/:id", h.DeleteHall)
	admin.POST("/performances", h.CreatePerformance)
	admin.PUT("/performances/:id", h.UpdatePerformance)
	admin.DELETE("/performances/:id", h.DeletePerformance)
}

// RegisterReservations registers the reservation endpoints. Every route
// requires an authenticated user; both roles may book and each user
// sees only their own reservations.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string) {
	g := e.Group("/v1/reservations",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleCustomer),
	)
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
}
