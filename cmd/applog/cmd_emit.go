package main

import (
	"context"
	"fmt"

	"applogs/internal/logger"
)

// emit opens a session, writes message through the named logger and closes
// the file again.
func emit(opts emitCmd, lc logger.Config, message string) error {
	level, err := logger.ParseLevel(opts.level)
	if err != nil {
		return fmt.Errorf("emit: %w", err)
	}

	logs, err := logger.New(lc)
	if err != nil {
		return err
	}
	logs.Named(opts.name).Log(context.Background(), level, message)
	return logs.Close()
}
