package mock

import (
	"context"

	"github.com/fwojciec/tgfeed"
)

var _ tgfeed.MessageService = (*MessageService)(nil)

// MessageService is a mock implementation of tgfeed.MessageService.
type MessageService struct {
	SaveMessagesFn func(ctx context.Context, channelID string, msgs []*tgfeed.Message) (int, error)
	FindMessagesFn func(ctx context.Context, filter tgfeed.MessageFilter) ([]*tgfeed.Message, error)
}

func (s *MessageService) SaveMessages(ctx context.Context, channelID string, msgs []*tgfeed.Message) (int, error) {
	return s.SaveMessagesFn(ctx, channelID, msgs)
}

func (s *MessageService) FindMessages(ctx context.Context, filter tgfeed.MessageFilter) ([]*tgfeed.Message, error) {
	return s.FindMessagesFn(ctx, filter)
}
