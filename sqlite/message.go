package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/tgfeed"
)

// Compile-time interface verification.
var _ tgfeed.MessageService = (*MessageService)(nil)

// MessageService implements tgfeed.MessageService using SQLite.
type MessageService struct {
	db *DB
}

// NewMessageService creates a new MessageService.
func NewMessageService(db *DB) *MessageService {
	return &MessageService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content []byte) string {
	h := xxhash.Sum64(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// SaveMessages inserts new messages and rewrites stored ones whose content
// changed (edits, view counts). It returns the number of rows written.
// All messages are validated before any is written.
func (s *MessageService) SaveMessages(ctx context.Context, channelID string, msgs []*tgfeed.Message) (int, error) {
	for _, msg := range msgs {
		if err := msg.Validate(); err != nil {
			return 0, err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	fetchedAt := time.Now().UTC().Format(time.RFC3339)
	var changed int
	for _, msg := range msgs {
		contents, err := json.Marshal(msg.Contents)
		if err != nil {
			return 0, fmt.Errorf("encode contents of message %s: %w", msg.Number, err)
		}
		full, err := json.Marshal(msg)
		if err != nil {
			return 0, fmt.Errorf("encode message %s: %w", msg.Number, err)
		}

		result, err := tx.ExecContext(ctx, `
			INSERT INTO messages (channel_id, number, author, date, views, voters, contents, content_hash, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (channel_id, number) DO UPDATE SET
				author = excluded.author,
				date = excluded.date,
				views = excluded.views,
				voters = excluded.voters,
				contents = excluded.contents,
				content_hash = excluded.content_hash,
				fetched_at = excluded.fetched_at
			WHERE messages.content_hash != excluded.content_hash
		`, channelID, msg.Number, msg.Author, msg.Date, nullString(msg.Views), nullString(msg.Voters),
			string(contents), hashContent(full), fetchedAt)
		if err != nil {
			return 0, err
		}

		n, err := result.RowsAffected()
		if err != nil {
			return 0, err
		}
		changed += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return changed, nil
}

// FindMessages retrieves a channel's messages oldest first.
func (s *MessageService) FindMessages(ctx context.Context, filter tgfeed.MessageFilter) ([]*tgfeed.Message, error) {
	var query strings.Builder
	args := []any{filter.ChannelID}

	query.WriteString(`SELECT number, author, date, views, voters, contents FROM messages WHERE channel_id = ?`)
	query.WriteString(" ORDER BY CAST(number AS INTEGER), number")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*tgfeed.Message
	for rows.Next() {
		var msg tgfeed.Message
		var views, voters sql.NullString
		var contents string

		if err := rows.Scan(&msg.Number, &msg.Author, &msg.Date, &views, &voters, &contents); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(contents), &msg.Contents); err != nil {
			return nil, fmt.Errorf("decode contents of message %s: %w", msg.Number, err)
		}
		msg.Views = stringPtr(views)
		msg.Voters = stringPtr(voters)

		msgs = append(msgs, &msg)
	}

	return msgs, rows.Err()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
