package models

// AddAssetRequest is the body of POST /api/v1/sessions/:id/portfolio
type AddAssetRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// RiskRequest is the body of PUT /api/v1/sessions/:id/risk
type RiskRequest struct {
	RiskTolerance *int `json:"risk_tolerance" binding:"required"`
}

// SignalsQuery is the query of GET /api/v1/signals
type SignalsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=0"`
}

// PricingQuery is the query of GET /api/v1/content/pricing
type PricingQuery struct {
	Billing string `form:"billing"` // "monthly" (default) or "yearly"
}

// LedgerQuery is the query of GET /api/v1/sessions/:id/ledger
type LedgerQuery struct {
	Format string `form:"format"` // "json" (default) or "csv"
}

// SignUpRequest is the body of POST /api/v1/auth-test/signup
type SignUpRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
