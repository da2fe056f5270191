package main

import (
	"fmt"
	"io"
	"time"

	"applogs/internal/config"
	"applogs/internal/logger"
)

func loadLoggerConfig(path string) (logger.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return logger.Config{}, err
	}
	return cfg.Log.LoggerConfig()
}

// showPath prints the session path for a process started at now.
func showPath(lc logger.Config, now time.Time, w io.Writer) {
	_, _ = fmt.Fprintln(w, logger.NewSession(lc, now).Path)
}
