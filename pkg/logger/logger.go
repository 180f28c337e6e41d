package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New. build the production logger used by every binary. stdout only, ISO8601
// timestamps so log lines line up with archived clip timestamps.
func New() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.TimeKey = "time"

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log, nil
}
