package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/tgfeed"
	"github.com/fwojciec/tgfeed/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage(number, text string) *tgfeed.Message {
	return &tgfeed.Message{
		Number:   number,
		Author:   "Owner",
		Date:     "2024-01-15T10:30:00+00:00",
		Contents: tgfeed.Contents{tgfeed.Text{Content: text}},
	}
}

func TestMessageService_SaveMessages(t *testing.T) {
	t.Parallel()

	t.Run("inserts new messages", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ch := createChannel(t, db, "durov")
		svc := sqlite.NewMessageService(db)

		n, err := svc.SaveMessages(context.Background(), ch.ID, []*tgfeed.Message{
			testMessage("1", "first"),
			testMessage("2", "second"),
		})

		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("skips unchanged messages", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ch := createChannel(t, db, "durov")
		svc := sqlite.NewMessageService(db)
		ctx := context.Background()

		_, err := svc.SaveMessages(ctx, ch.ID, []*tgfeed.Message{testMessage("1", "first")})
		require.NoError(t, err)

		n, err := svc.SaveMessages(ctx, ch.ID, []*tgfeed.Message{testMessage("1", "first")})

		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("updates edited messages", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ch := createChannel(t, db, "durov")
		svc := sqlite.NewMessageService(db)
		ctx := context.Background()

		_, err := svc.SaveMessages(ctx, ch.ID, []*tgfeed.Message{testMessage("1", "first")})
		require.NoError(t, err)

		n, err := svc.SaveMessages(ctx, ch.ID, []*tgfeed.Message{testMessage("1", "edited")})
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		msgs, err := svc.FindMessages(ctx, tgfeed.MessageFilter{ChannelID: ch.ID})
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, tgfeed.Contents{tgfeed.Text{Content: "edited"}}, msgs[0].Contents)
	})

	t.Run("rejects messages missing metadata without writing", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ch := createChannel(t, db, "durov")
		svc := sqlite.NewMessageService(db)
		ctx := context.Background()

		_, err := svc.SaveMessages(ctx, ch.ID, []*tgfeed.Message{testMessage("1", "ok"), {Number: "2"}})
		assert.Equal(t, tgfeed.EMISSINGMETADATA, tgfeed.ErrorCode(err))

		msgs, err := svc.FindMessages(ctx, tgfeed.MessageFilter{ChannelID: ch.ID})
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})

	t.Run("fails for unknown channel", func(t *testing.T) {
		t.Parallel()

		_, err := sqlite.NewMessageService(setupTestDB(t)).SaveMessages(context.Background(), "missing",
			[]*tgfeed.Message{testMessage("1", "x")})

		assert.Error(t, err)
	})
}

func TestMessageService_FindMessages(t *testing.T) {
	t.Parallel()

	t.Run("round-trips every field", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ch := createChannel(t, db, "durov")
		svc := sqlite.NewMessageService(db)
		ctx := context.Background()

		views := "1.2K"
		msg := &tgfeed.Message{
			Number: "7",
			Author: "Owner",
			Date:   "2024-01-15T10:30:00+00:00",
			Views:  &views,
			Contents: tgfeed.Contents{
				tgfeed.Text{Content: "caption"},
				tgfeed.Photo{URL: "https://cdn/p.jpg"},
				tgfeed.Document{URL: "https://t.me/durov/7", Title: []string{"a.pdf"}, Size: []string{"1 MB"}},
				tgfeed.Poll{Question: "Q", Type: "Quiz", Options: []tgfeed.PollOption{{Percent: "100%", Value: "Yes"}}},
			},
		}
		_, err := svc.SaveMessages(ctx, ch.ID, []*tgfeed.Message{msg})
		require.NoError(t, err)

		msgs, err := svc.FindMessages(ctx, tgfeed.MessageFilter{ChannelID: ch.ID})

		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, msg, msgs[0])
	})

	t.Run("orders by numeric message number", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ch := createChannel(t, db, "durov")
		svc := sqlite.NewMessageService(db)
		ctx := context.Background()

		_, err := svc.SaveMessages(ctx, ch.ID, []*tgfeed.Message{
			testMessage("100", "c"),
			testMessage("9", "a"),
			testMessage("10", "b"),
		})
		require.NoError(t, err)

		msgs, err := svc.FindMessages(ctx, tgfeed.MessageFilter{ChannelID: ch.ID})

		require.NoError(t, err)
		require.Len(t, msgs, 3)
		assert.Equal(t, "9", msgs[0].Number)
		assert.Equal(t, "10", msgs[1].Number)
		assert.Equal(t, "100", msgs[2].Number)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ch := createChannel(t, db, "durov")
		svc := sqlite.NewMessageService(db)
		ctx := context.Background()

		_, err := svc.SaveMessages(ctx, ch.ID, []*tgfeed.Message{
			testMessage("1", "a"), testMessage("2", "b"), testMessage("3", "c"),
		})
		require.NoError(t, err)

		msgs, err := svc.FindMessages(ctx, tgfeed.MessageFilter{ChannelID: ch.ID, Offset: 1, Limit: 1})
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, "2", msgs[0].Number)

		msgs, err = svc.FindMessages(ctx, tgfeed.MessageFilter{ChannelID: ch.ID, Offset: 2})
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, "3", msgs[0].Number)
	})

	t.Run("scopes to channel", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		a := createChannel(t, db, "a")
		b := createChannel(t, db, "b")
		svc := sqlite.NewMessageService(db)
		ctx := context.Background()

		_, err := svc.SaveMessages(ctx, a.ID, []*tgfeed.Message{testMessage("1", "a")})
		require.NoError(t, err)
		_, err = svc.SaveMessages(ctx, b.ID, []*tgfeed.Message{testMessage("1", "b")})
		require.NoError(t, err)

		msgs, err := svc.FindMessages(ctx, tgfeed.MessageFilter{ChannelID: a.ID})

		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, tgfeed.Contents{tgfeed.Text{Content: "a"}}, msgs[0].Contents)
	})
}
