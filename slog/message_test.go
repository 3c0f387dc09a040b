package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/tgfeed"
	"github.com/fwojciec/tgfeed/mock"
	tgslog "github.com/fwojciec/tgfeed/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMessageService(t *testing.T) {
	t.Parallel()

	t.Run("logs saved message counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.MessageService{
			SaveMessagesFn: func(ctx context.Context, channelID string, msgs []*tgfeed.Message) (int, error) {
				return 1, nil
			},
		}

		n, err := tgslog.NewLoggingMessageService(inner, logger).SaveMessages(context.Background(), "ch-1",
			[]*tgfeed.Message{{Number: "1"}, {Number: "2"}})

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		output := buf.String()
		assert.Contains(t, output, "save messages")
		assert.Contains(t, output, "channel=ch-1")
		assert.Contains(t, output, "received=2")
		assert.Contains(t, output, "changed=1")
	})

	t.Run("delegates find without logging", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		want := []*tgfeed.Message{{Number: "1"}}
		inner := &mock.MessageService{
			FindMessagesFn: func(ctx context.Context, filter tgfeed.MessageFilter) ([]*tgfeed.Message, error) {
				assert.Equal(t, "ch-1", filter.ChannelID)
				return want, nil
			},
		}

		got, err := tgslog.NewLoggingMessageService(inner, logger).FindMessages(context.Background(),
			tgfeed.MessageFilter{ChannelID: "ch-1"})

		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Empty(t, buf.String())
	})
}
