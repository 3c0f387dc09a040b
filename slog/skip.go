package slog

import (
	"log/slog"

	"github.com/fwojciec/tgfeed"
)

// SkipLogger returns a SkipFunc that logs each dropped item or message as
// a warning with its error code.
func SkipLogger(logger *slog.Logger) tgfeed.SkipFunc {
	return func(err error) {
		logger.Warn("skipped",
			"code", tgfeed.ErrorCode(err),
			"reason", tgfeed.ErrorMessage(err),
		)
	}
}
