package logging

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"tradingai-demo/internal/config"
)

// Setup configures the standard logrus logger from config.
// Production defaults to JSON output so log shippers can parse it.
func Setup(cfg config.LoggingConfig, production bool) error {
	level, err := log.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)

	format := cfg.Format
	if format == "" && production {
		format = "json"
	}
	switch format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
