package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateItemForUser stores a new item owned by the user named in the path,
// who is not necessarily the caller.
func (h *Handler) CreateItemForUser(c *gin.Context) {
	ownerID, err := h.parseID(c.Param("user_id"))
	if err != nil {
		h.jsonError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var body struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.jsonError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.Store.CreateUserItem(body.Title, body.Description, ownerID)
	if err != nil {
		h.jsonError(c, http.StatusInternalServerError, "Could not save item")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) ListItems(c *gin.Context) {
	skip, limit, err := h.listParams(c)
	if err != nil {
		h.jsonError(c, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}

	items, err := h.Store.GetItems(skip, limit)
	if err != nil {
		h.jsonError(c, http.StatusInternalServerError, "Failed to fetch items")
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListMyItems returns the items owned by the calling user.
func (h *Handler) ListMyItems(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		h.jsonError(c, http.StatusNotFound, "User is not authenticated")
		return
	}

	items, err := h.Store.GetItemsByOwner(user.ID)
	if err != nil {
		h.jsonError(c, http.StatusInternalServerError, "Failed to fetch items")
		return
	}
	c.JSON(http.StatusOK, items)
}
