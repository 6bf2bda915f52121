package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewApplicationLogger constructs a zap logger configured for human-readable console output.
func NewApplicationLogger() (*zap.Logger, error) {
	configuration := zap.NewProductionConfig()
	configuration.Encoding = "console"
	configuration.DisableCaller = true
	configuration.DisableStacktrace = true
	configuration.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	configuration.EncoderConfig.TimeKey = ""
	configuration.EncoderConfig.LevelKey = ""
	configuration.EncoderConfig.NameKey = ""
	configuration.EncoderConfig.CallerKey = ""
	configuration.EncoderConfig.MessageKey = "message"
	configuration.EncoderConfig.StacktraceKey = ""
	return configuration.Build()
}
