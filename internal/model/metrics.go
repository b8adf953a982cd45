package model

// PerformanceMetrics are the headline numbers on the analytics dashboard.
// All values are percentages except Sharpe.
type PerformanceMetrics struct {
	TotalReturn float64 `json:"total_return" yaml:"total_return"`
	Sharpe      float64 `json:"sharpe" yaml:"sharpe"`
	MaxDrawdown float64 `json:"max_drawdown" yaml:"max_drawdown"`
	WinRate     float64 `json:"win_rate" yaml:"win_rate"`
}

func DefaultPerformanceMetrics() PerformanceMetrics {
	return PerformanceMetrics{
		TotalReturn: 45.2,
		Sharpe:      1.87,
		MaxDrawdown: -5.3,
		WinRate:     73.4,
	}
}
