package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradingai-demo/internal/api/models"
	"tradingai-demo/internal/content"
	"tradingai-demo/internal/model"
)

// ContentHandler serves the static landing-page data
type ContentHandler struct {
	catalog model.Catalog
}

// NewContentHandler creates a new content handler
func NewContentHandler(catalog model.Catalog) *ContentHandler {
	return &ContentHandler{catalog: catalog}
}

// Landing handles GET /api/v1/content/landing
func (h *ContentHandler) Landing(c *gin.Context) {
	c.JSON(http.StatusOK, content.NewLanding())
}

// Pricing handles GET /api/v1/content/pricing
func (h *ContentHandler) Pricing(c *gin.Context) {
	var q models.PricingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	billing, err := content.ParseBilling(q.Billing)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_BILLING", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.PricingResponse{Billing: billing, Plans: content.Quotes(billing)})
}

// Signals handles GET /api/v1/signals
func (h *ContentHandler) Signals(c *gin.Context) {
	var q models.SignalsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.SignalsResponse{Signals: content.RankSignals(content.Signals(), q.Limit)})
}

// Catalog handles GET /api/v1/catalog
func (h *ContentHandler) Catalog(c *gin.Context) {
	assets := make([]model.Asset, len(h.catalog))
	copy(assets, h.catalog)
	c.JSON(http.StatusOK, models.CatalogResponse{Assets: assets})
}
