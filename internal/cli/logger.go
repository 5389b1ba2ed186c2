package cli

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the CLI logger writing to w: warnings by default, info
// with --verbose, debug with --debug. Reports go to stdout, logs never do.
func newLogger(w io.Writer, debug, verbose bool) *zap.Logger {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch {
	case debug:
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case verbose:
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	sink := zapcore.Lock(zapcore.AddSync(w))
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config.EncoderConfig), sink, config.Level)

	options := []zap.Option{zap.ErrorOutput(sink)}
	if debug {
		options = append(options, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	}
	return zap.New(core, options...)
}
