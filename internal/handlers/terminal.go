package handlers

import (
	"errors"
	"net/http"

	"taxi_dispatch/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK        = "ok"
	statusLoggedOut = "logged_out"
	statusSet       = "status_set"
	statusPinSet    = "pin_changed"

	errGetState = "failed to load terminal state"
	errLogout   = "failed to log out"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"` // Vapaa | Ajossa | Ei käytössä
}

type changePinRequest struct {
	NewPin string `json:"new_pin" binding:"required"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Get terminal state
// @Tags         terminal
// @Produce      json
// @Success      200  {object}  models.TerminalState
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Set availability status
// @Tags         terminal
// @Accept       json
// @Produce      json
// @Param        body  body  setStatusRequest  true  "Status payload"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/status [post]
// @Security     BearerAuth
func (h *Handler) setStatus(c *gin.Context) {
	var req setStatusRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	if err := h.services.SetStatus(c.Request.Context(), req.Status); err != nil {
		if errors.Is(err, service.ErrUnknownStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to set status", "set_status_failed", err, "status", req.Status)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSet, "current": req.Status})
}

// @Summary      List status options
// @Tags         terminal
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "options"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/status/options [get]
// @Security     BearerAuth
func (h *Handler) statusOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"options": h.services.Options()})
}

// @Summary      Log out
// @Description  Clears the session and wipes the entire durable store, history included.
// @Tags         terminal
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/session/logout [post]
// @Security     BearerAuth
func (h *Handler) logout(c *gin.Context) {
	if err := h.services.Logout(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLogout, "logout_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusLoggedOut})
}

// @Summary      Change own PIN
// @Description  Rewrites the logged-in operator's directory entry. Admin only.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  changePinRequest  true  "New PIN payload"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/v1/admin/pin [post]
// @Security     BearerAuth
func (h *Handler) changePin(c *gin.Context) {
	var req changePinRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	actingPin := h.services.Current().Pin
	if err := h.services.ChangePin(c.Request.Context(), actingPin, req.NewPin); err != nil {
		if errors.Is(err, service.ErrPinTooShort) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgPinTooShort})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to change pin", "change_pin_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusPinSet})
}

// @Summary      List the credential directory
// @Description  Returns every directory entry (names and roles; pins are never serialized). Admin only.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, drivers"
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/admin/drivers [get]
// @Security     BearerAuth
func (h *Handler) listDrivers(c *gin.Context) {
	drivers, err := h.services.Drivers(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to list drivers", "list_drivers_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(drivers),
		"drivers": drivers,
	})
}
