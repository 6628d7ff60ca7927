package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"github.com/sato4sk/items-api/crud"
	"github.com/sato4sk/items-api/models"
	"github.com/sato4sk/items-api/services"
)

const (
	tokenHeader     = "X-API-TOKEN"
	cacheDefaultExp = 5 * time.Minute
	cacheCleanupInt = 10 * time.Minute

	defaultListSkip  = "0"
	defaultListLimit = "100"
)

// Handler holds the application's dependencies, making them explicit.
type Handler struct {
	DB        *gorm.DB
	Store     *crud.Store
	UserCache *cache.Cache
}

// NewHandler creates a new handler with its dependencies.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:        db,
		Store:     crud.NewStore(db),
		UserCache: cache.New(cacheDefaultExp, cacheCleanupInt),
	}
}

// RequireAuth is a middleware to protect routes that require authentication,
// with a caching layer in front of the user lookup. Every failure mode
// answers 404; the original wire contract uses 404 rather than 401 for
// missing and invalid tokens, and compatibility is kept.
func (h *Handler) RequireAuth(c *gin.Context) {
	token := c.GetHeader(tokenHeader)
	if token == "" {
		h.jsonError(c, http.StatusNotFound, "X-API-TOKEN is None")
		return
	}

	payload := services.DecodeToken(token)
	raw, ok := payload["user_id"]
	if !ok {
		h.jsonError(c, http.StatusNotFound, "User is not authenticated")
		return
	}
	userID64, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		h.jsonError(c, http.StatusNotFound, "User is not authenticated")
		return
	}
	userID := uint(userID64)

	// Check cache first.
	cacheKey := userCacheKey(userID)
	if cached, found := h.UserCache.Get(cacheKey); found {
		if user, ok := cached.(models.User); ok {
			h.finishAuth(c, user)
			return
		}
	}

	// Cache miss: fetch from DB.
	user, err := h.Store.GetUser(userID)
	if err != nil {
		h.jsonError(c, http.StatusInternalServerError, "Failed to fetch user")
		return
	}
	if user == nil {
		h.jsonError(c, http.StatusNotFound, "User is not authenticated")
		return
	}

	h.UserCache.Set(cacheKey, *user, cache.DefaultExpiration)
	h.finishAuth(c, *user)
}

func (h *Handler) finishAuth(c *gin.Context, user models.User) {
	if !user.IsActive {
		h.jsonError(c, http.StatusNotFound, "User is not active")
		return
	}
	c.Set("user", user)
	c.Next()
}

// ## Helper Methods

func (h *Handler) jsonError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"detail": message})
}

func (h *Handler) currentUser(c *gin.Context) (models.User, bool) {
	u, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := u.(models.User)
	return user, ok
}

func (h *Handler) parseID(idStr string) (uint, error) {
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (h *Handler) listParams(c *gin.Context) (skip, limit int, err error) {
	skip, err = strconv.Atoi(c.DefaultQuery("skip", defaultListSkip))
	if err != nil {
		return 0, 0, err
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", defaultListLimit))
	if err != nil {
		return 0, 0, err
	}
	return skip, limit, nil
}

func (h *Handler) invalidateUserCache(userID uint) {
	h.UserCache.Delete(userCacheKey(userID))
}

func userCacheKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}
