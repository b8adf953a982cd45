package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tradingai-demo/internal/api/models"
	"tradingai-demo/internal/backend"
)

// VisitorCookie identifies the browser that owns a backend session.
const VisitorCookie = "tradingai_visitor"

// AuthTestHandler exposes the auth-test scratch flows. Every flow answers
// 200 with a status line, including backend failures. Backend sessions are
// scoped to the visitor cookie, issued on first use.
type AuthTestHandler struct {
	tester *backend.AuthTester
}

// NewAuthTestHandler creates a new auth-test handler. A nil tester means no
// backend is configured.
func NewAuthTestHandler(tester *backend.AuthTester) *AuthTestHandler {
	return &AuthTestHandler{tester: tester}
}

func (h *AuthTestHandler) available(c *gin.Context) bool {
	if h.tester == nil {
		respondError(c, http.StatusServiceUnavailable, "BACKEND_DISABLED", "no backend is configured")
		return false
	}
	return true
}

// visitor returns the request context scoped to the caller's visitor id.
func (h *AuthTestHandler) visitor(c *gin.Context) context.Context {
	id, err := c.Cookie(VisitorCookie)
	if err != nil || uuid.Validate(id) != nil {
		id = uuid.NewString()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(VisitorCookie, id, 0, "/", "", false, true)
	}
	return backend.WithVisitor(c.Request.Context(), id)
}

// SignUp handles POST /api/v1/auth-test/signup
func (h *AuthTestHandler) SignUp(c *gin.Context) {
	if !h.available(c) {
		return
	}
	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	c.JSON(http.StatusOK, h.tester.SignUp(h.visitor(c), req.Email, req.Password))
}

// CheckProfile handles POST /api/v1/auth-test/profile
func (h *AuthTestHandler) CheckProfile(c *gin.Context) {
	if !h.available(c) {
		return
	}
	c.JSON(http.StatusOK, h.tester.CheckProfile(h.visitor(c)))
}

// InsertSignal handles POST /api/v1/auth-test/signals
func (h *AuthTestHandler) InsertSignal(c *gin.Context) {
	if !h.available(c) {
		return
	}
	c.JSON(http.StatusOK, h.tester.InsertSignal(h.visitor(c)))
}

// ListSignals handles GET /api/v1/auth-test/signals
func (h *AuthTestHandler) ListSignals(c *gin.Context) {
	if !h.available(c) {
		return
	}
	c.JSON(http.StatusOK, h.tester.ListMySignals(h.visitor(c)))
}
