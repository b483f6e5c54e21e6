package logger

import (
	"fmt"
	"os"

	"github.com/Domenick1991/eventra/config"
	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger and returns it.
func Setup(cfg config.LogConfig) (*logrus.Logger, error) {
	level := logrus.InfoLevel
	if cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	log := logrus.StandardLogger()
	switch cfg.Format {
	case "", "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	log.SetOutput(os.Stdout)
	log.SetLevel(level)
	return log, nil
}
