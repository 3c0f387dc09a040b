package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/tgfeed"
)

// Ensure LoggingParser implements tgfeed.PageParser.
var _ tgfeed.PageParser = (*LoggingParser)(nil)

// LoggingParser wraps a PageParser with debug logging.
type LoggingParser struct {
	next   tgfeed.PageParser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next tgfeed.PageParser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// ParsePage delegates to the wrapped parser and logs the page shape.
func (p *LoggingParser) ParsePage(html string) (page *tgfeed.Page, err error) {
	defer func(begin time.Time) {
		var count int
		var next tgfeed.Cursor
		if page != nil {
			count, next = len(page.Fragments), page.Next
		}
		p.logger.Debug("parse page",
			"messages", count,
			"next", string(next),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ParsePage(html)
}
