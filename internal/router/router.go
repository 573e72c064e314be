// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/akarpova/shareit/internal/handler"
	"github.com/akarpova/shareit/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout accepts either a refresh token in the body (single session)
	// or a bearer token (all sessions), so it carries no middleware.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterAPI registers the authenticated application endpoints under
// /v1: users, items, bookings and item requests.  Every route requires a
// valid access token; per-resource access rules live in the services.
func RegisterAPI(e *echo.Echo, jwtSecret string,
	u *handler.UserHandler, i *handler.ItemHandler, b *handler.BookingHandler, r *handler.RequestHandler,
	extra ...echo.MiddlewareFunc) {
	mw := append([]echo.MiddlewareFunc{middleware.JWTAuth(jwtSecret)}, extra...)
	g := e.Group("/v1", mw...)

	// ---- Users ----
	g.GET("/users", u.List)
	g.GET("/users/:id", u.Get)
	g.PATCH("/users/:id", u.Patch)
	g.DELETE("/users/:id", u.Delete)

	// ---- Items ----
	g.POST("/items", i.Create)
	g.PATCH("/items/:id", i.Patch)
	// echo matches static segments before :id, so /items/search stays reachable
	g.GET("/items/search", i.Search)
	g.GET("/items/:id", i.Get)
	g.GET("/items", i.ListOwned)
	g.POST("/items/:id/comment", i.AddComment)

	// ---- Bookings ----
	g.POST("/bookings", b.Create)
	g.PATCH("/bookings/:id", b.Confirm)
	g.GET("/bookings/owner", b.ListByOwner)
	g.GET("/bookings/:id", b.Get)
	g.GET("/bookings", b.ListByBooker)

	// ---- Item requests ----
	g.POST("/requests", r.Create)
	g.GET("/requests", r.ListOwn)
	g.GET("/requests/all", r.ListOthers)
	g.GET("/requests/:id", r.Get)
}
