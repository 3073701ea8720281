package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/devcamper/api/internal/handler"    // import the handlers that implement business logic
	"github.com/devcamper/api/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/devcamper/api/internal/model"
)

// Handlers collects every handler the router needs so Register takes a
// single argument instead of one per resource.
type Handlers struct {
	Bootcamps *handler.BootcampHandler
	Courses   *handler.CourseHandler
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
}

// Register wires the whole HTTP surface onto the provided Echo instance.
// All resource routes live under /api/v1 and share the rate limiter;
// mutating routes additionally require a valid token and a permitted role.
func Register(e *echo.Echo, h Handlers, jwtSecret string, limiter echo.MiddlewareFunc) {
	// Health check outside the versioned group so load balancers and
	// monitoring systems can probe it without hitting the rate limiter.
	e.GET("/healthz", handler.Health)

	api := e.Group("/api/v1")
	if limiter != nil {
		api.Use(limiter)
	}

	protect := middleware.Protect(jwtSecret)
	publish := middleware.Authorize(model.RolePublisher, model.RoleAdmin)
	admin := middleware.Authorize(model.RoleAdmin)

	// Bootcamps: reads are public, writes require a publisher or admin.
	b := api.Group("/bootcamps")
	b.GET("", h.Bootcamps.List)
	b.GET("/:id", h.Bootcamps.Get)
	b.GET("/radius/:zipcode/:distance", h.Bootcamps.Radius)
	b.POST("", h.Bootcamps.Create, protect, publish)
	b.PUT("/:id", h.Bootcamps.Update, protect, publish)
	b.DELETE("/:id", h.Bootcamps.Delete, protect, publish)
	b.PUT("/:id/photo", h.Bootcamps.UploadPhoto, protect, publish)

	// Courses nested under a bootcamp, plus the flat collection.
	b.GET("/:id/courses", h.Courses.ListByBootcamp)
	b.POST("/:id/courses", h.Courses.Create, protect, publish)

	co := api.Group("/courses")
	co.GET("", h.Courses.List)
	co.GET("/:id", h.Courses.Get)
	co.PUT("/:id", h.Courses.Update, protect, publish)
	co.DELETE("/:id", h.Courses.Delete, protect, publish)

	// Auth: register/login/forgot/reset are open, the rest need a token.
	a := api.Group("/auth")
	a.POST("/register", h.Auth.Register)
	a.POST("/login", h.Auth.Login)
	a.POST("/forgotpassword", h.Auth.ForgotPassword)
	a.PUT("/resetpassword/:resettoken", h.Auth.ResetPassword)
	a.GET("/me", h.Auth.Me, protect)
	a.PUT("/updatedetails", h.Auth.UpdateDetails, protect)
	a.PUT("/updatepassword", h.Auth.UpdatePassword, protect)

	// User administration is admin-only end to end.
	u := api.Group("/users", protect, admin)
	u.GET("", h.Users.List)
	u.GET("/:id", h.Users.Get)
	u.POST("", h.Users.Create)
	u.PUT("/:id", h.Users.Update)
	u.DELETE("/:id", h.Users.Delete)
}
