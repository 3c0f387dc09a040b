package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/tgfeed"
	"github.com/fwojciec/tgfeed/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkSaveMessages compares saving a sync's worth of messages in one
// call against one call per message.
func BenchmarkSaveMessages(b *testing.B) {
	const msgsPerSync = 100

	b.Run("batched", func(b *testing.B) {
		benchmarkSaveMessages(b, msgsPerSync, msgsPerSync)
	})

	b.Run("one_per_call", func(b *testing.B) {
		benchmarkSaveMessages(b, msgsPerSync, 1)
	})
}

func benchmarkSaveMessages(b *testing.B, total, batch int) {
	b.Helper()

	for i := 0; i < b.N; i++ {
		b.StopTimer()

		db := sqlite.NewDB(filepath.Join(b.TempDir(), fmt.Sprintf("bench%d.db", i)))
		require.NoError(b, db.Open())

		ctx := context.Background()
		ch := &tgfeed.Channel{Name: "benchmark"}
		require.NoError(b, sqlite.NewChannelService(db).CreateChannel(ctx, ch))
		svc := sqlite.NewMessageService(db)

		msgs := make([]*tgfeed.Message, total)
		for j := range msgs {
			msgs[j] = &tgfeed.Message{
				Number: fmt.Sprint(j + 1),
				Author: "Bench",
				Date:   "2024-01-01T00:00:00+00:00",
				Contents: tgfeed.Contents{
					tgfeed.Text{Content: fmt.Sprintf("Post %d. Lorem ipsum dolor sit amet.", j)},
				},
			}
		}

		b.StartTimer()

		for j := 0; j < total; j += batch {
			if _, err := svc.SaveMessages(ctx, ch.ID, msgs[j:j+batch]); err != nil {
				b.Fatal(err)
			}
		}

		b.StopTimer()
		db.Close()
	}
}
