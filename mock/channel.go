package mock

import (
	"context"

	"github.com/fwojciec/tgfeed"
)

var _ tgfeed.ChannelService = (*ChannelService)(nil)

// ChannelService is a mock implementation of tgfeed.ChannelService.
type ChannelService struct {
	CreateChannelFn     func(ctx context.Context, channel *tgfeed.Channel) error
	FindChannelByNameFn func(ctx context.Context, name string) (*tgfeed.Channel, error)
	FindChannelsFn      func(ctx context.Context) ([]*tgfeed.Channel, error)
	UpdateChannelFn     func(ctx context.Context, id string, upd tgfeed.ChannelUpdate) (*tgfeed.Channel, error)
	DeleteChannelFn     func(ctx context.Context, id string) error
}

func (s *ChannelService) CreateChannel(ctx context.Context, channel *tgfeed.Channel) error {
	return s.CreateChannelFn(ctx, channel)
}

func (s *ChannelService) FindChannelByName(ctx context.Context, name string) (*tgfeed.Channel, error) {
	return s.FindChannelByNameFn(ctx, name)
}

func (s *ChannelService) FindChannels(ctx context.Context) ([]*tgfeed.Channel, error) {
	return s.FindChannelsFn(ctx)
}

func (s *ChannelService) UpdateChannel(ctx context.Context, id string, upd tgfeed.ChannelUpdate) (*tgfeed.Channel, error) {
	return s.UpdateChannelFn(ctx, id, upd)
}

func (s *ChannelService) DeleteChannel(ctx context.Context, id string) error {
	return s.DeleteChannelFn(ctx, id)
}
