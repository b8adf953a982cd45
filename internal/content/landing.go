package content

import "tradingai-demo/internal/model"

// HeroPoint is one sample of the hero chart.
type HeroPoint struct {
	Time  string  `json:"time"`
	Price float64 `json:"price"`
}

type Feature struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PerformancePoint is one month of the dashboard equity curve.
type PerformancePoint struct {
	Month     string  `json:"month"`
	Portfolio float64 `json:"portfolio"`
	Benchmark float64 `json:"benchmark"`
}

// Signal is a mock model output shown on the dashboard.
type Signal struct {
	Symbol     string      `json:"symbol"`
	Confidence int         `json:"confidence"`
	Direction  model.Trend `json:"direction"`
	Change     string      `json:"change"`
}

// Driver is one feature-importance bar of the explainability panel.
type Driver struct {
	Feature string  `json:"feature"`
	Weight  float64 `json:"weight"`
}

// Landing is everything the landing page renders that is not simulated.
type Landing struct {
	Hero        []HeroPoint        `json:"hero"`
	Features    []Feature          `json:"features"`
	Performance []PerformancePoint `json:"performance"`
	Signals     []Signal           `json:"signals"`
	Drivers     []Driver           `json:"drivers"`
	Plans       []Plan             `json:"plans"`
}

// NewLanding returns a fresh copy of the landing content.
func NewLanding() Landing {
	return Landing{
		Hero: []HeroPoint{
			{"9:30", 1250},
			{"9:35", 1265},
			{"9:40", 1280},
			{"9:45", 1275},
			{"9:50", 1290},
			{"9:55", 1310},
		},
		Features: []Feature{
			{"brain", "AI-Powered Signals", "Advanced machine learning models analyze thousands of market indicators in real-time to identify high-probability trading opportunities."},
			{"trending-up", "Real-Time Predictions", "Get instant buy/sell signals with confidence scores updated every minute. Never miss a market move again."},
			{"shield", "Risk Management", "Built-in risk assessment and portfolio optimization tools help protect your capital while maximizing returns."},
			{"zap", "Lightning Fast", "Sub-second signal generation and execution recommendations powered by optimized algorithms and cloud infrastructure."},
			{"bar-chart-3", "Backtesting Engine", "Validate strategies with years of historical data. See exactly how our models would have performed in any market condition."},
			{"target", "Explainable AI", "Understand exactly why each signal was generated. Full transparency into model decisions and contributing factors."},
		},
		Performance: []PerformancePoint{
			{"Jan", 100000, 100000},
			{"Feb", 105000, 102000},
			{"Mar", 115000, 98000},
			{"Apr", 125000, 105000},
			{"May", 135000, 108000},
			{"Jun", 145000, 112000},
		},
		Signals: Signals(),
		Drivers: []Driver{
			{"RSI", 0.35},
			{"Volume", 0.28},
			{"MA Cross", 0.22},
			{"Sentiment", 0.15},
		},
		Plans: Plans(),
	}
}

// Signals returns the dashboard signals in display order.
func Signals() []Signal {
	return []Signal{
		{"AAPL", 92, model.TrendUp, "+2.4%"},
		{"TSLA", 87, model.TrendUp, "+5.1%"},
		{"GOOGL", 83, model.TrendDown, "-1.2%"},
		{"MSFT", 91, model.TrendUp, "+1.8%"},
		{"META", 76, model.TrendDown, "-0.8%"},
	}
}
