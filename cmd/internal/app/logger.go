package app

import (
	"fmt"
	"io"
	"log/slog"
)

// NewLogger builds the CLI logger. Without verbose the level is info;
// with verbose it is level.
func NewLogger(w io.Writer, level string, isVerbose, isJSON bool) (*slog.Logger, error) {
	loggerOpt := &slog.HandlerOptions{}

	if isVerbose {
		var logLvl slog.Level

		err := logLvl.UnmarshalText([]byte(level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}

		loggerOpt.Level = logLvl
	}

	switch isJSON {
	case true:
		return slog.New(slog.NewJSONHandler(w, loggerOpt)), nil
	default:
		return slog.New(slog.NewTextHandler(w, loggerOpt)), nil
	}
}
