package http

import (
	"os"
	"os/signal"
	"syscall"
)

// GracefulShutdown. block until SIGINT/SIGTERM so callers can run their
// cleanup after the servers drained.
func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	return <-quit
}
