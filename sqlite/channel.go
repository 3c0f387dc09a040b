package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/tgfeed"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ tgfeed.ChannelService = (*ChannelService)(nil)

// ChannelService implements tgfeed.ChannelService using SQLite.
type ChannelService struct {
	db *DB
}

// NewChannelService creates a new ChannelService.
func NewChannelService(db *DB) *ChannelService {
	return &ChannelService{db: db}
}

const channelColumns = "id, name, cursor, title, description, image, created_at, updated_at"

// CreateChannel creates a new channel.
func (s *ChannelService) CreateChannel(ctx context.Context, channel *tgfeed.Channel) error {
	if err := channel.Validate(); err != nil {
		return err
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM channels WHERE name = ?", channel.Name).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return tgfeed.Errorf(tgfeed.ECONFLICT, "channel %q already exists", channel.Name)
	}

	channel.ID = uuid.New().String()
	now := time.Now().UTC()
	channel.CreatedAt = now
	channel.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO channels (id, name, cursor, title, description, image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, channel.ID, channel.Name, string(channel.Cursor), channel.Title, channel.Description, channel.Image,
		channel.CreatedAt.Format(time.RFC3339), channel.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindChannelByName retrieves a channel by name.
func (s *ChannelService) FindChannelByName(ctx context.Context, name string) (*tgfeed.Channel, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+channelColumns+" FROM channels WHERE name = ?", name)
	channel, err := scanChannel(row)
	if err == sql.ErrNoRows {
		return nil, tgfeed.Errorf(tgfeed.ENOTFOUND, "channel %q not found", name)
	}
	return channel, err
}

func (s *ChannelService) findChannelByID(ctx context.Context, id string) (*tgfeed.Channel, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+channelColumns+" FROM channels WHERE id = ?", id)
	channel, err := scanChannel(row)
	if err == sql.ErrNoRows {
		return nil, tgfeed.Errorf(tgfeed.ENOTFOUND, "channel not found")
	}
	return channel, err
}

// FindChannels retrieves all channels ordered by name.
func (s *ChannelService) FindChannels(ctx context.Context) ([]*tgfeed.Channel, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+channelColumns+" FROM channels ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []*tgfeed.Channel
	for rows.Next() {
		channel, err := scanChannel(rows)
		if err != nil {
			return nil, err
		}
		channels = append(channels, channel)
	}

	return channels, rows.Err()
}

// UpdateChannel updates an existing channel.
func (s *ChannelService) UpdateChannel(ctx context.Context, id string, upd tgfeed.ChannelUpdate) (*tgfeed.Channel, error) {
	channel, err := s.findChannelByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Cursor != nil {
		channel.Cursor = *upd.Cursor
	}
	if upd.Info != nil {
		channel.Title = upd.Info.Title
		channel.Description = upd.Info.Description
		channel.Image = upd.Info.Image
	}

	channel.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE channels
		SET cursor = ?, title = ?, description = ?, image = ?, updated_at = ?
		WHERE id = ?
	`, string(channel.Cursor), channel.Title, channel.Description, channel.Image,
		channel.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	return channel, nil
}

// DeleteChannel permanently removes a channel. Its messages are removed by
// the foreign key cascade.
func (s *ChannelService) DeleteChannel(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM channels WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return tgfeed.Errorf(tgfeed.ENOTFOUND, "channel not found")
	}

	return nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanChannel(row scanner) (*tgfeed.Channel, error) {
	var channel tgfeed.Channel
	var cursor, createdAt, updatedAt string

	if err := row.Scan(&channel.ID, &channel.Name, &cursor, &channel.Title, &channel.Description,
		&channel.Image, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	channel.Cursor = tgfeed.Cursor(cursor)

	var err error
	if channel.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if channel.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &channel, nil
}
