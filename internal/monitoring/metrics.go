package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "demo_sessions_active",
		Help: "Number of mounted demo sessions",
	})

	TickerTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "demo_ticker_ticks_total",
		Help: "Total number of ticker board updates",
	})

	MetricsDrifts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "demo_metrics_drifts_total",
		Help: "Total number of dashboard metric drifts",
	})

	HeroSteps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "demo_hero_price_steps_total",
		Help: "Total number of hero price steps",
	})

	PortfolioChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "demo_portfolio_changes_total",
		Help: "Total number of effective simulator buys and sells",
	}, []string{"action"})

	TradesExecuted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "demo_trades_executed_total",
		Help: "Total number of simulated trade executions started",
	})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "demo_ws_connections",
		Help: "Number of active snapshot websocket connections",
	})

	BackendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "demo_backend_requests_total",
		Help: "Backend-as-a-service calls by operation and outcome",
	}, []string{"operation", "outcome"})
)
