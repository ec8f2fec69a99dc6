// Package logging configures the process-wide logrus logger.
package logging

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"loanportal/internal/config"
)

// Setup applies level and format from config. Unknown levels fall back to info.
func Setup(cfg config.LoggingConfig) {
	switch strings.ToLower(cfg.Format) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		formatter := new(log.TextFormatter)
		formatter.TimestampFormat = "2006-01-02T15:04:05.999Z07:00"
		formatter.FullTimestamp = true
		log.SetFormatter(formatter)
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		log.WithError(err).Warnf("cannot parse log level %q, using info", cfg.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.Debug("debug logging enabled")
}
