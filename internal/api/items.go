package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/hospital-billing/internal/service"
	"github.com/mmynk/hospital-billing/internal/storage"
)

type itemHandler struct {
	catalog Catalog
}

// List handles GET /api/items.
func (h *itemHandler) List(c *gin.Context) {
	items, err := h.catalog.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"items":   fromItems(items),
		"count":   len(items),
	})
}

// ListByCategory handles GET /api/items/category/:category.
func (h *itemHandler) ListByCategory(c *gin.Context) {
	category := c.Param("category")
	items, err := h.catalog.ListByCategory(c.Request.Context(), category)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"category": category,
		"items":    fromItems(items),
		"count":    len(items),
	})
}

// Add handles POST /api/items.
func (h *itemHandler) Add(c *gin.Context) {
	var in service.ItemInput
	if err := bindJSON(c, &in); err != nil {
		invalidBody(c, err)
		return
	}

	id, err := h.catalog.Add(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"item_id": id,
		"message": "Item added successfully",
	})
}

// Update handles PUT /api/items/:id.
func (h *itemHandler) Update(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	var in service.ItemInput
	if err := bindJSON(c, &in); err != nil {
		invalidBody(c, err)
		return
	}

	if err := h.catalog.Update(c.Request.Context(), id, in); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item updated successfully",
	})
}

// Delete handles DELETE /api/items/:id.
func (h *itemHandler) Delete(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item deleted successfully",
	})
}

// itemID parses the :id path parameter. An id that is not a positive integer
// cannot name an item, so it is reported as not found.
func itemID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		writeError(c, fmt.Errorf("item %q: %w", raw, storage.ErrNotFound))
		return 0, false
	}
	return id, true
}
