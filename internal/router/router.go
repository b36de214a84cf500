// Package router wires HTTP routes to handlers and applies the middleware
// chain: rate limiting on everything, JWT authentication on /v1 except
// login, and the admin role gate on catalog management.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/evergreenmedia/podcast-api/internal/config"
	"github.com/evergreenmedia/podcast-api/internal/handler"
	"github.com/evergreenmedia/podcast-api/internal/middleware"
	"github.com/evergreenmedia/podcast-api/internal/model"
)

// Register attaches every route to the Echo instance. The users resolver is
// what JWTAuth uses to map token subjects onto accounts.
func Register(
	e *echo.Echo,
	cfg config.Config,
	rdb *redis.Client,
	users middleware.UserResolver,
	a *handler.AuthHandler,
	s *handler.ShowHandler,
	p *handler.PartnerHandler,
) {
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	e.GET("/healthz", handler.Health)
	e.POST("/v1/auth/login", a.Login)

	// Everything under /v1 besides login requires a valid bearer token.
	auth := e.Group("/v1", middleware.JWTAuth(cfg.JWTSecret, users))
	auth.GET("/me", a.Me)
	auth.GET("/partners/me/podcasts", p.MyShows, middleware.RequireRole(model.RolePartner))

	// Catalog management is admin-only.
	admin := auth.Group("", middleware.RequireRole(model.RoleAdmin))
	admin.GET("/podcasts", s.ListShows)
	admin.GET("/podcasts/filter", s.FilterShows)
	admin.GET("/podcasts/:id", s.GetShow)
	admin.POST("/podcasts", s.CreateShow)
	admin.PUT("/podcasts/:id", s.UpdateShow)
	admin.DELETE("/podcasts/:id", s.DeleteShow)

	admin.POST("/partners", p.CreatePartner)
	admin.PUT("/partners/:id/password", p.UpdatePassword)
	admin.GET("/partners/:id/podcasts", p.PartnerShows)
	admin.DELETE("/users/:id", p.DeleteUser)

	admin.POST("/podcasts/:show_id/partners/:partner_id", p.Associate)
	admin.DELETE("/podcasts/:show_id/partners/:partner_id", p.Unassociate)
}
