// Package obs contains observability utilities such as logging.
package obs

import (
	"log/slog"
	"os"
)

// Logger is the structured logger used across the service. It defaults to
// a JSON handler on stdout so the binary logs sensibly even before
// InitLogger runs (tests, for example).
var Logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// InitLogger initializes Logger with a JSON handler at the given level.
func InitLogger(level slog.Level) {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	Logger = slog.New(h)
}
