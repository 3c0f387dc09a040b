package tgfeed

import (
	"context"
	"time"
)

// Channel is a tracked channel together with its saved pagination state.
type Channel struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Cursor      Cursor    `json:"cursor"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the channel contains invalid fields.
func (c *Channel) Validate() error {
	if c.Name == "" {
		return Errorf(EINVALID, "channel name required")
	}
	return nil
}

// Info returns the channel header fields.
func (c *Channel) Info() ChannelInfo {
	return ChannelInfo{Title: c.Title, Description: c.Description, Image: c.Image}
}

// ChannelService represents a service for managing tracked channels.
type ChannelService interface {
	// CreateChannel creates a new channel.
	// Returns ECONFLICT if a channel with the same name exists.
	CreateChannel(ctx context.Context, channel *Channel) error

	// FindChannelByName retrieves a channel by name.
	// Returns ENOTFOUND if channel does not exist.
	FindChannelByName(ctx context.Context, name string) (*Channel, error)

	// FindChannels retrieves all channels ordered by name.
	FindChannels(ctx context.Context) ([]*Channel, error)

	// UpdateChannel updates an existing channel.
	// Returns ENOTFOUND if channel does not exist.
	UpdateChannel(ctx context.Context, id string, upd ChannelUpdate) (*Channel, error)

	// DeleteChannel permanently removes a channel and its messages.
	// Returns ENOTFOUND if channel does not exist.
	DeleteChannel(ctx context.Context, id string) error
}

// ChannelUpdate represents fields that can be updated on a channel.
type ChannelUpdate struct {
	Cursor *Cursor
	Info   *ChannelInfo
}

// MessageService archives decoded messages per channel.
type MessageService interface {
	// SaveMessages inserts new messages and updates changed ones.
	// Returns the number of messages written.
	SaveMessages(ctx context.Context, channelID string, msgs []*Message) (int, error)

	// FindMessages retrieves archived messages oldest first.
	FindMessages(ctx context.Context, filter MessageFilter) ([]*Message, error)
}

// MessageFilter represents a filter for FindMessages.
type MessageFilter struct {
	ChannelID string `json:"channelId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
