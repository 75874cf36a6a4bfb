package logger

import (
	"io"
	"os"

	"bookshop/internal/config"

	"github.com/sirupsen/logrus"
)

// New creates a configured logrus logger named name. Development gets a text
// formatter, every other environment JSON. An unparsable level falls back to
// info.
func New(name string, cfg *config.Config) *logrus.Logger {
	return NewWithOutput(os.Stdout, name, cfg)
}

func NewWithOutput(out io.Writer, name string, cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if cfg.IsDevelopment() {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		if cfg.LogLevel == "" {
			lvl = logrus.DebugLevel
		}
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.SetLevel(lvl)

	logger.WithFields(logrus.Fields{"app": name, "env": cfg.Env}).Info("logger initialized")
	return logger
}

// LogError logs msg at error level with err attached under "error".
func LogError(logger logrus.FieldLogger, msg string, err error, fields logrus.Fields) {
	if fields == nil {
		fields = logrus.Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	logger.WithFields(fields).Error(msg)
}
