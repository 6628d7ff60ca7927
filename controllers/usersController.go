package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sato4sk/items-api/crud"
	"github.com/sato4sk/items-api/services"
)

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Login checks an email/password pair passed as query parameters and hands
// out a token for the matching user.
func (h *Handler) Login(c *gin.Context) {
	email := c.Query("email")
	password := c.Query("password")

	user, err := services.AuthenticateUser(h.Store, email, password)
	if err != nil {
		h.jsonError(c, http.StatusInternalServerError, "Failed to fetch user")
		return
	}
	if user == nil {
		h.jsonError(c, http.StatusUnauthorized, "Incorrect username or password")
		return
	}
	if !user.IsActive {
		h.jsonError(c, http.StatusNotFound, "User is not active")
		return
	}

	token := services.CreateUserToken(user.ID)
	c.JSON(http.StatusOK, gin.H{
		"login_status": "success",
		"X-API-TOKEN":  token,
	})
}

// Register creates a new user and returns it together with a token, so the
// caller is logged in right away.
func (h *Handler) Register(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.jsonError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.Store.CreateUser(body.Email, body.Password)
	if errors.Is(err, crud.ErrEmailTaken) {
		h.jsonError(c, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		h.jsonError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token := services.CreateUserToken(user.ID)
	c.JSON(http.StatusOK, gin.H{
		"X-API-TOKEN": token,
		"user":        user,
	})
}

func (h *Handler) ListUsers(c *gin.Context) {
	skip, limit, err := h.listParams(c)
	if err != nil {
		h.jsonError(c, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}

	users, err := h.Store.GetUsers(skip, limit)
	if err != nil {
		h.jsonError(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	userID, err := h.parseID(c.Param("user_id"))
	if err != nil {
		h.jsonError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.Store.GetUser(userID)
	if err != nil {
		h.jsonError(c, http.StatusInternalServerError, "Failed to fetch user")
		return
	}
	if user == nil {
		h.jsonError(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser deactivates the target user and moves their items to the
// remaining active user with the smallest id. Any authenticated user may
// deactivate any user; there is no per-resource authorization.
func (h *Handler) DeleteUser(c *gin.Context) {
	userID, err := h.parseID(c.Param("user_id"))
	if err != nil {
		h.jsonError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.Store.DeactivateUser(userID)
	switch {
	case errors.Is(err, crud.ErrUserNotFound):
		h.jsonError(c, http.StatusNotFound, "User not found")
		return
	case errors.Is(err, crud.ErrNoEligibleRecipient):
		h.jsonError(c, http.StatusBadRequest, "No eligible recipient for items")
		return
	case err != nil:
		h.jsonError(c, http.StatusInternalServerError, "Failed to deactivate user")
		return
	}

	// The deactivated user must not authenticate from a stale cache entry.
	h.invalidateUserCache(userID)

	c.JSON(http.StatusOK, user)
}
