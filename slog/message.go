package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tgfeed"
)

// Ensure LoggingMessageService implements tgfeed.MessageService.
var _ tgfeed.MessageService = (*LoggingMessageService)(nil)

// LoggingMessageService wraps a MessageService, logging archive writes.
type LoggingMessageService struct {
	next   tgfeed.MessageService
	logger *slog.Logger
}

// NewLoggingMessageService creates a new LoggingMessageService.
func NewLoggingMessageService(next tgfeed.MessageService, logger *slog.Logger) *LoggingMessageService {
	return &LoggingMessageService{next: next, logger: logger}
}

// SaveMessages delegates to the wrapped service and logs how many rows
// changed.
func (s *LoggingMessageService) SaveMessages(ctx context.Context, channelID string, msgs []*tgfeed.Message) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("save messages",
			"channel", channelID,
			"received", len(msgs),
			"changed", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveMessages(ctx, channelID, msgs)
}

// FindMessages delegates to the wrapped service.
func (s *LoggingMessageService) FindMessages(ctx context.Context, filter tgfeed.MessageFilter) ([]*tgfeed.Message, error) {
	return s.next.FindMessages(ctx, filter)
}
