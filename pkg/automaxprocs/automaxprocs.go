package automaxprocs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/aria-network/rwa-gateway/pkg/logger"
	"github.com/aria-network/rwa-gateway/pkg/logger/slogx"
)

// Init sets GOMAXPROCS to match the Linux container CPU quota, if any.
// A no-op on non-Linux systems and in environments without a quota; a
// GOMAXPROCS environment variable always wins.
func Init() error {
	logger := logger.With(
		slogx.String("package", "automaxprocs"),
		slogx.String("event", "set_gomaxprocs"),
		slogx.Int("prev_maxprocs", Current()),
	)

	setMaxProcsLogger := func(format string, v ...any) {
		fields := make([]slog.Attr, 0, 1)
		// maxprocs.Set passes the applied value to its logger, except from
		// the undo path
		if val, ok := utils.Optional(v); ok {
			if _, exists := os.LookupEnv("GOMAXPROCS"); exists {
				val = Current()
			}
			if applied, ok := val.(int); ok {
				fields = append(fields, slogx.Int("set_maxprocs", applied))
			}
		}
		logger.LogAttrs(context.Background(), slog.LevelInfo, fmt.Sprintf(format, v...), fields...)
	}

	if _, err := maxprocs.Set(maxprocs.Logger(setMaxProcsLogger), maxprocs.Min(1)); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Current returns the current value of GOMAXPROCS.
func Current() int {
	return runtime.GOMAXPROCS(0)
}
