package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/sato4sk/items-api/middleware"
)

// NewRouter wires every route onto a gin engine. Separate from main so
// tests can exercise the full HTTP surface in-process.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.RequestID)

	// Public routes
	router.GET("/login/", h.Login)
	router.POST("/users/", h.Register)

	// Protected routes - Users
	router.GET("/health-check", h.RequireAuth, h.HealthCheck)
	router.GET("/users/", h.RequireAuth, h.ListUsers)
	router.GET("/users/:user_id", h.RequireAuth, h.GetUser)
	router.POST("/users/:user_id/delete", h.RequireAuth, h.DeleteUser)

	// Protected routes - Items
	router.POST("/users/:user_id/items/", h.RequireAuth, h.CreateItemForUser)
	router.GET("/items/", h.RequireAuth, h.ListItems)
	router.GET("/me/items", h.RequireAuth, h.ListMyItems)

	return router
}
