package handlers

import (
	"net/http"

	"taxi_dispatch/internal/models"

	"github.com/gin-gonic/gin"
)

const orderDesc = "desc"

// @Summary      List location history
// @Description  Ordered history of position fixes with the status in effect at each. Use order=desc for newest first, as the terminal's history panel shows it.
// @Tags         history
// @Produce      json
// @Param        order  query  string  false  "asc (default) or desc"  Enums(asc,desc)
// @Success      200  {object}  map[string]interface{}  "count, entries"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/history [get]
// @Security     BearerAuth
func (h *Handler) getHistory(c *gin.Context) {
	entries := h.services.List()
	if c.Query("order") == orderDesc {
		entries = reverseEntries(entries)
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(entries),
		"entries": entries,
	})
}

func reverseEntries(in []models.HistoryEntry) []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(in))
	for i, e := range in {
		out[len(in)-1-i] = e
	}
	return out
}
