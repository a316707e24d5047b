package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type authHandler struct {
	auth Login
}

// Login handles POST /api/auth/login. It is a 404 when editor auth is disabled.
func (h *authHandler) Login(c *gin.Context) {
	if h.auth == nil {
		notFound(c)
		return
	}

	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		invalidBody(c, err)
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"token":      session.Token,
		"expires_at": session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
