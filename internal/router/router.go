// Package router wires handlers, auth middleware and the Redis
// cache/rate-limit middleware onto the Echo instance.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/filmreel/video-rental/internal/config"
	"github.com/filmreel/video-rental/internal/handler"
	"github.com/filmreel/video-rental/internal/middleware"
)

// Handlers groups everything the route table needs.
type Handlers struct {
	Customers *handler.CustomerHandler
	Genres    *handler.GenreHandler
	Movies    *handler.MovieHandler
	Users     *handler.UserHandler
	Rentals   *handler.RentalHandler
}

// Register mounts every route of the API. Reads are public; writes
// require a token; deletes additionally require the admin flag. The
// cache middleware wraps public GETs and the token bucket guards login.
func Register(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	auth := middleware.Auth(cfg.JWTSecret)
	admin := middleware.RequireAdmin()
	cacheCfg := config.LoadCacheConfig()
	cache := middleware.NewRedisCache(cacheCfg, rdb)
	// Writes flush the resource's cached reads so a delete or update is
	// never masked by a stale entry.
	flush := middleware.NewCacheInvalidator(cacheCfg, rdb)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	customers := e.Group("/api/customers")
	customers.GET("", h.Customers.List, cache)
	customers.GET("/:id", h.Customers.Get, cache)
	customers.POST("", h.Customers.Create, auth, flush)
	customers.PUT("/:id", h.Customers.Update, auth, flush)
	customers.DELETE("/:id", h.Customers.Delete, auth, admin, flush)

	genres := e.Group("/api/genres")
	genres.GET("", h.Genres.List, cache)
	genres.GET("/:id", h.Genres.Get, cache)
	genres.POST("", h.Genres.Create, auth, flush)
	genres.PUT("/:id", h.Genres.Update, auth, flush)
	genres.DELETE("/:id", h.Genres.Delete, auth, admin, flush)

	movies := e.Group("/api/movies")
	movies.GET("", h.Movies.List, cache)
	movies.GET("/:id", h.Movies.Get, cache)
	movies.POST("", h.Movies.Create, auth, flush)
	movies.PUT("/:id", h.Movies.Update, auth, flush)
	movies.DELETE("/:id", h.Movies.Delete, auth, admin, flush)

	e.POST("/api/users", h.Users.Register)
	e.GET("/api/users/me", h.Users.Me, auth)
	e.POST("/api/login", h.Users.Login, limit)

	rentals := e.Group("/api/rentals")
	rentals.GET("", h.Rentals.List, auth)
	rentals.GET("/:id", h.Rentals.Get, auth)
	rentals.POST("", h.Rentals.Create, auth)

	e.POST("/api/returns", h.Rentals.Return, auth)
}

// ErrorHandler is the catch-all for failures no handler translated.
// It logs and echoes the raw message with a 500, or the HTTPError's own
// code when Echo raised it (unknown routes, method mismatches).
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := err.Error()
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		msg = http.StatusText(code)
	} else {
		c.Logger().Error(err)
	}
	_ = c.JSON(code, echo.Map{"error": msg})
}
