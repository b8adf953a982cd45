package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"tradingai-demo/internal/api/models"
	"tradingai-demo/internal/session"
	"tradingai-demo/internal/simulator"
	"tradingai-demo/internal/stream"
)

// SessionHandler handles demo-session requests
type SessionHandler struct {
	store   *session.Store
	gateway *stream.Gateway
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(store *session.Store, gateway *stream.Gateway) *SessionHandler {
	return &SessionHandler{store: store, gateway: gateway}
}

func (h *SessionHandler) lookup(c *gin.Context) (*session.Session, bool) {
	s, ok := h.store.Get(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "SESSION_NOT_FOUND", "session not found or expired")
		return nil, false
	}
	return s, true
}

// CreateSession handles POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	s, err := h.store.Create()
	if err != nil {
		log.Printf("SessionHandler: Failed to create session: %v", err)
		respondError(c, http.StatusInternalServerError, "SESSION_FAILED", err.Error())
		return
	}
	c.JSON(http.StatusCreated, s.Snapshot())
}

// GetSession handles GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// DeleteSession handles DELETE /api/v1/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if !h.store.Delete(c.Param("id")) {
		respondError(c, http.StatusNotFound, "SESSION_NOT_FOUND", "session not found or expired")
		return
	}
	c.Status(http.StatusNoContent)
}

// AddAsset handles POST /api/v1/sessions/:id/portfolio
func (h *SessionHandler) AddAsset(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	var req models.AddAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	changed, err := s.AddAsset(req.Symbol)
	if err != nil {
		h.portfolioError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.PortfolioChangeResponse{Changed: changed, Session: s.Snapshot()})
}

// RemoveAsset handles DELETE /api/v1/sessions/:id/portfolio/:symbol
func (h *SessionHandler) RemoveAsset(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	changed, err := s.RemoveAsset(c.Param("symbol"))
	if err != nil {
		h.portfolioError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.PortfolioChangeResponse{Changed: changed, Session: s.Snapshot()})
}

func (h *SessionHandler) portfolioError(c *gin.Context, err error) {
	if errors.Is(err, session.ErrUnknownAsset) {
		respondError(c, http.StatusNotFound, "UNKNOWN_ASSET", err.Error())
		return
	}
	respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
}

// ExecuteTrade handles POST /api/v1/sessions/:id/trades
func (h *SessionHandler) ExecuteTrade(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	switch err := s.ExecuteTrade(); {
	case err == nil:
		c.JSON(http.StatusAccepted, s.Snapshot())
	case errors.Is(err, simulator.ErrExecutionInFlight):
		respondError(c, http.StatusConflict, "EXECUTION_IN_FLIGHT", err.Error())
	case errors.Is(err, simulator.ErrEmptyPortfolio):
		respondError(c, http.StatusConflict, "EMPTY_PORTFOLIO", err.Error())
	case errors.Is(err, session.ErrNotMounted):
		respondError(c, http.StatusGone, "SESSION_CLOSED", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

// SetRiskTolerance handles PUT /api/v1/sessions/:id/risk
func (h *SessionHandler) SetRiskTolerance(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	var req models.RiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if err := s.SetRiskTolerance(*req.RiskTolerance); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_RISK_TOLERANCE", err.Error())
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// GetLedger handles GET /api/v1/sessions/:id/ledger
func (h *SessionHandler) GetLedger(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	var q models.LedgerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	entries := s.Ledger()

	switch q.Format {
	case "", "json":
		c.JSON(http.StatusOK, models.LedgerResponse{SessionID: s.ID(), Count: len(entries), Entries: entries})
	case "csv":
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="ledger.csv"`)
		c.Status(http.StatusOK)
		if err := simulator.WriteLedgerCSV(c.Writer, entries); err != nil {
			log.Printf("SessionHandler: Failed to write ledger CSV: %v", err)
		}
	default:
		respondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be json or csv")
	}
}

// Stream handles GET /api/v1/sessions/:id/stream
func (h *SessionHandler) Stream(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	h.gateway.Serve(c.Writer, c.Request, s)
}
