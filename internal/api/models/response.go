package models

import (
	"tradingai-demo/internal/content"
	"tradingai-demo/internal/model"
	"tradingai-demo/internal/session"
	"tradingai-demo/internal/simulator"
)

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
	Streams  int    `json:"streams"`
}

// PortfolioChangeResponse reports whether an add/remove changed anything
type PortfolioChangeResponse struct {
	Changed bool             `json:"changed"`
	Session session.Snapshot `json:"session"`
}

type LedgerResponse struct {
	SessionID string                  `json:"session_id"`
	Count     int                     `json:"count"`
	Entries   []simulator.LedgerEntry `json:"entries"`
}

type CatalogResponse struct {
	Assets []model.Asset `json:"assets"`
}

type SignalsResponse struct {
	Signals []content.Signal `json:"signals"`
}

type PricingResponse struct {
	Billing content.Billing `json:"billing"`
	Plans   []content.Quote `json:"plans"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
