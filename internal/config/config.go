package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"tradingai-demo/internal/model"
	"tradingai-demo/internal/performance"
	"tradingai-demo/internal/simulator"
	"tradingai-demo/internal/ticker"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load the simulator catalog from a separate YAML (e.g. configs/catalog.yaml).
	// If both CatalogFile and Simulation.Catalog are provided, Simulation.Catalog wins.
	CatalogFile string           `yaml:"catalog_file"`
	Server      ServerConfig     `yaml:"server"`
	Simulation  SimulationConfig `yaml:"simulation"`
	Backend     BackendConfig    `yaml:"backend"`
	Logging     LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Port           string        `yaml:"port"`
	Env            string        `yaml:"env"` // "development" or "production"
	StaticDir      string        `yaml:"static_dir"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

// SimulationConfig holds every constant of the demo engine. It is passed
// explicitly to sessions so tests can inject deterministic values.
type SimulationConfig struct {
	Seed    int64    `yaml:"seed"` // 0 = seed from clock
	Symbols []string `yaml:"symbols"`

	TickerRows     int           `yaml:"ticker_rows"`
	HistoryWindow  int           `yaml:"history_window"`
	PriceStepWidth float64       `yaml:"price_step_width"`
	TickInterval   time.Duration `yaml:"tick_interval"`

	InitialMetrics model.PerformanceMetrics `yaml:"initial_metrics"`
	DriftWidths    performance.Widths       `yaml:"drift_widths"`
	DriftInterval  time.Duration            `yaml:"drift_interval"`

	HeroStartPrice float64       `yaml:"hero_start_price"`
	HeroStepWidth  float64       `yaml:"hero_step_width"`
	HeroInterval   time.Duration `yaml:"hero_interval"`

	InitialBalance float64       `yaml:"initial_balance"`
	LotSize        int64         `yaml:"lot_size"`
	RiskTolerance  int           `yaml:"risk_tolerance"`
	ExecutionDelay time.Duration `yaml:"execution_delay"`
	Catalog        []AssetConfig `yaml:"catalog"`
}

type AssetConfig struct {
	Symbol        string  `yaml:"symbol"`
	Name          string  `yaml:"name"`
	Price         float64 `yaml:"price"`
	ChangePercent float64 `yaml:"change_percent"`
	Confidence    int     `yaml:"confidence"`
}

type BackendConfig struct {
	URL     string        `yaml:"url"`
	AnonKey string        `yaml:"anon_key"`
	Timeout time.Duration `yaml:"timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// Default returns the configuration the site ships with.
func Default() Config {
	tick := ticker.DefaultOptions()
	return Config{
		Server: ServerConfig{
			Port:           "8080",
			Env:            "development",
			StaticDir:      "./web/dist",
			SessionTTL:     30 * time.Minute,
			AllowedOrigins: []string{"*"},
		},
		Simulation: SimulationConfig{
			TickerRows:     tick.Rows,
			HistoryWindow:  tick.Window,
			PriceStepWidth: tick.StepWidth,
			TickInterval:   1200 * time.Millisecond,
			InitialMetrics: model.DefaultPerformanceMetrics(),
			DriftWidths:    performance.DefaultWidths(),
			DriftInterval:  5 * time.Second,
			HeroStartPrice: 1250,
			HeroStepWidth:  20,
			HeroInterval:   2 * time.Second,
			InitialBalance: 100000,
			LotSize:        10,
			RiskTolerance:  50,
			ExecutionDelay: 2 * time.Second,
			Catalog:        catalogToConfig(model.DefaultCatalog()),
		},
		Backend: BackendConfig{
			Timeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path (optional), applies environment overrides and validates.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyEnv()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config over the defaults, but does not validate it.
// An empty path yields the defaults.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return &c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// Catalog is replaced, not merged, when the file sets it.
	c.Simulation.Catalog = nil
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.CatalogFile != "" && len(c.Simulation.Catalog) == 0 {
		catalogPath := c.CatalogFile
		if !filepath.IsAbs(catalogPath) {
			// Prefer paths relative to the config file, fall back to cwd.
			cand := filepath.Join(filepath.Dir(path), catalogPath)
			if _, err := os.Stat(cand); err == nil {
				catalogPath = cand
			}
		}
		loaded, err := loadCatalogFile(catalogPath)
		if err != nil {
			return nil, err
		}
		c.Simulation.Catalog = loaded
	}
	if len(c.Simulation.Catalog) == 0 {
		c.Simulation.Catalog = catalogToConfig(model.DefaultCatalog())
	}
	return &c, nil
}

// ApplyEnv overlays environment variables onto c.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("API_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("API_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		c.Server.StaticDir = v
	}
	if v := os.Getenv("SUPABASE_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("SUPABASE_ANON_KEY"); v != "" {
		c.Backend.AnonKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SIM_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Simulation.Seed = seed
		}
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if strings.TrimSpace(c.Server.Port) == "" {
		return errors.New("server.port is required")
	}
	if c.Server.SessionTTL <= 0 {
		return errors.New("server.session_ttl must be > 0")
	}
	if err := c.Simulation.Validate(); err != nil {
		return fmt.Errorf("simulation config invalid: %w", err)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func (s SimulationConfig) Validate() error {
	if s.TickInterval <= 0 || s.DriftInterval <= 0 || s.HeroInterval <= 0 || s.ExecutionDelay <= 0 {
		return errors.New("tick_interval, drift_interval, hero_interval and execution_delay must be > 0")
	}
	if s.HeroStepWidth < 0 {
		return errors.New("hero_step_width must be >= 0")
	}
	if err := s.TickerOptions().Validate(); err != nil {
		return err
	}
	if err := s.DriftWidths.Validate(); err != nil {
		return err
	}
	if err := s.AccountOptions().Validate(); err != nil {
		return err
	}
	return s.ModelCatalog().Validate()
}

func (s SimulationConfig) TickerOptions() ticker.Options {
	return ticker.Options{
		Rows:      s.TickerRows,
		Window:    s.HistoryWindow,
		StepWidth: s.PriceStepWidth,
	}
}

func (s SimulationConfig) AccountOptions() simulator.Options {
	return simulator.Options{
		InitialBalance: decimal.NewFromFloat(s.InitialBalance),
		LotSize:        s.LotSize,
		RiskTolerance:  s.RiskTolerance,
		Now:            time.Now,
	}
}

func (s SimulationConfig) ModelCatalog() model.Catalog {
	out := make(model.Catalog, 0, len(s.Catalog))
	for _, a := range s.Catalog {
		out = append(out, a.ToModel())
	}
	return out
}

func (a AssetConfig) ToModel() model.Asset {
	return model.NewAsset(strings.ToUpper(strings.TrimSpace(a.Symbol)), a.Name, a.Price, a.ChangePercent, a.Confidence)
}

func catalogToConfig(c model.Catalog) []AssetConfig {
	out := make([]AssetConfig, 0, len(c))
	for _, a := range c {
		price, _ := a.Price.Float64()
		change, _ := a.ChangePercent.Float64()
		out = append(out, AssetConfig{
			Symbol:        a.Symbol,
			Name:          a.Name,
			Price:         price,
			ChangePercent: change,
			Confidence:    a.Confidence,
		})
	}
	return out
}

type catalogFileWrapper struct {
	Catalog []AssetConfig `yaml:"catalog"`
}

func loadCatalogFile(path string) ([]AssetConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w catalogFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Catalog, nil
}
