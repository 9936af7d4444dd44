package handlers

import (
	"errors"
	"net/http"

	"taxi_dispatch/internal/service"

	"github.com/gin-gonic/gin"
)

// User-facing messages shown by the terminal, kept verbatim in its locale.
const (
	msgWrongPin    = "Väärä PIN-koodi!"
	msgPinTooShort = "PINin tulee olla vähintään 4 merkkiä."
)

type loginRequest struct {
	Pin string `json:"pin" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a
// 400 JSON on failure. Returns false if the request was already handled.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Log in with a PIN
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  loginRequest  true  "PIN payload"
// @Success      200  {object}  map[string]interface{}  "token, session"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	sess, token, err := h.services.Login(c.Request.Context(), input.Pin)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredential) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": msgWrongPin})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "login failed", "login_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "session": sess})
}
