package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/hospital-billing/internal/service"
)

type billHandler struct {
	ledger Ledger
}

// Save handles POST /api/bills.
func (h *billHandler) Save(c *gin.Context) {
	var in service.BillInput
	if err := bindJSON(c, &in); err != nil {
		invalidBody(c, err)
		return
	}

	id, err := h.ledger.Save(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"bill_id": id,
		"message": "Bill saved successfully",
	})
}

// List handles GET /api/bills?limit=N.
func (h *billHandler) List(c *gin.Context) {
	limit := service.ParseLimit(c.Query("limit"))

	bills, err := h.ledger.ListRecent(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"bills":   fromBills(bills),
		"count":   len(bills),
		"limit":   limit,
	})
}
