package content

import (
	"fmt"
	"strings"
)

type Billing string

const (
	BillingMonthly Billing = "monthly"
	BillingYearly  Billing = "yearly"
)

// ParseBilling accepts "monthly" or "yearly"; empty means monthly.
func ParseBilling(s string) (Billing, error) {
	switch Billing(strings.ToLower(strings.TrimSpace(s))) {
	case "", BillingMonthly:
		return BillingMonthly, nil
	case BillingYearly:
		return BillingYearly, nil
	}
	return "", fmt.Errorf("unknown billing period %q", s)
}

type Plan struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	MonthlyPrice int      `json:"monthly_price"`
	YearlyPrice  int      `json:"yearly_price"`
	Features     []string `json:"features"`
	Limitations  []string `json:"limitations,omitempty"`
	CTA          string   `json:"cta"`
	Popular      bool     `json:"popular"`
}

func (p Plan) Free() bool { return p.MonthlyPrice == 0 }

// YearlySavings is what paying yearly saves over twelve monthly payments.
func (p Plan) YearlySavings() int {
	return p.MonthlyPrice*12 - p.YearlyPrice
}

// Quote is a plan priced for one billing period.
type Quote struct {
	Plan
	Billing Billing `json:"billing"`
	Price   int     `json:"price"`
	Period  string  `json:"period,omitempty"` // "month" or "year"; empty for free plans
	Savings int     `json:"savings,omitempty"`
}

func (p Plan) Quote(b Billing) Quote {
	q := Quote{Plan: p, Billing: b, Price: p.MonthlyPrice, Period: "month"}
	if b == BillingYearly {
		q.Price = p.YearlyPrice
		q.Period = "year"
		q.Savings = p.YearlySavings()
	}
	if p.Free() {
		q.Period = ""
		q.Savings = 0
	}
	return q
}

func Quotes(b Billing) []Quote {
	plans := Plans()
	out := make([]Quote, len(plans))
	for i, p := range plans {
		out[i] = p.Quote(b)
	}
	return out
}

func Plans() []Plan {
	return []Plan{
		{
			Name:         "Free",
			Description:  "Perfect for getting started",
			MonthlyPrice: 0,
			YearlyPrice:  0,
			Features:     []string{"5 signals per day", "Basic portfolio tracking", "Email alerts", "Community support"},
			Limitations:  []string{"No backtesting", "Limited to 3 assets", "Basic explanations only"},
			CTA:          "Start Free",
		},
		{
			Name:         "Pro",
			Description:  "For serious traders",
			MonthlyPrice: 49,
			YearlyPrice:  490,
			Features: []string{
				"Unlimited signals", "Advanced backtesting", "Real-time alerts", "Full AI explanations",
				"Risk management tools", "API access", "Priority support",
			},
			CTA:     "Start Pro Trial",
			Popular: true,
		},
		{
			Name:         "Institutional",
			Description:  "For trading firms & advisors",
			MonthlyPrice: 199,
			YearlyPrice:  1990,
			Features: []string{
				"Everything in Pro", "White-label solution", "Custom models", "Dedicated support",
				"Advanced analytics", "Multi-user accounts", "Custom integrations", "SLA guarantee",
			},
			CTA: "Contact Sales",
		},
	}
}
