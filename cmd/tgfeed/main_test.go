package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/tgfeed"
	main "github.com/fwojciec/tgfeed/cmd/tgfeed"
	"github.com/fwojciec/tgfeed/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// previewPage renders a preview document holding the given message numbers
// oldest first. An empty before omits the pagination control.
func previewPage(before string, numbers ...int) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="tgme_channel_info_header_title">Test Channel</div><section>`)
	if before != "" {
		fmt.Fprintf(&b, `<div class="tme_messages_more" data-before="%s"></div>`, before)
	}
	for _, n := range numbers {
		fmt.Fprintf(&b, `<div class="tgme_widget_message_bubble">
<a class="tgme_widget_message_owner_name">Owner</a>
<div class="tgme_widget_message_text">post %d</div>
<a class="tgme_widget_message_date" href="https://t.me/test/%d"><time datetime="2024-01-%02dT10:00:00+00:00"></time></a>
</div>`, n, n, n)
	}
	b.WriteString(`</section></body></html>`)
	return b.String()
}

// history serves preview pages keyed by the before parameter and records
// the requested URLs.
func history(t *testing.T, pages map[string]string) (*mock.Fetcher, func() []string) {
	t.Helper()
	var (
		mu   sync.Mutex
		urls []string
	)
	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, rawURL string, params url.Values) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			urls = append(urls, rawURL+"?"+params.Encode())
			html, ok := pages[params.Get("before")]
			if !ok {
				return "", fmt.Errorf("unexpected before=%q", params.Get("before"))
			}
			return html, nil
		},
	}
	return fetcher, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), urls...)
	}
}

// newTestMain returns a Main with an isolated database and a config file
// that disables pacing and retries.
func newTestMain(t *testing.T, fetcher tgfeed.Fetcher) *main.Main {
	t.Helper()
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("rate_limit: 0\nretries: 0\n"), 0o600))

	m := main.NewMain()
	m.DBPath = filepath.Join(dir, "test.db")
	m.ConfigPath = configPath
	m.Fetcher = fetcher
	return m
}

func TestMain_Run_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("prints messages as json in pager order", func(t *testing.T) {
		t.Parallel()

		fetcher, urls := history(t, map[string]string{
			"":  previewPage("4", 4, 5, 6),
			"4": previewPage("1", 1, 2, 3),
		})
		m := newTestMain(t, fetcher)

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"fetch", "durov", "-n", "2"}, stdout, stderr)
		require.NoError(t, err)

		var out struct {
			Channel  string             `json:"channel"`
			Info     tgfeed.ChannelInfo `json:"info"`
			Next     string             `json:"next"`
			Messages []*tgfeed.Message  `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))

		assert.Equal(t, "durov", out.Channel)
		assert.Equal(t, "Test Channel", out.Info.Title)
		assert.Equal(t, "1", out.Next)
		require.Len(t, out.Messages, 6)
		for i, msg := range out.Messages {
			assert.Equal(t, fmt.Sprint(6-i), msg.Number)
		}
		assert.Equal(t, tgfeed.Contents{tgfeed.Text{Content: "post 6"}}, out.Messages[0].Contents)

		assert.Equal(t, []string{
			"https://t.me/s/durov?",
			"https://t.me/s/durov?before=4",
		}, urls())
	})

	t.Run("starts before the given cursor", func(t *testing.T) {
		t.Parallel()

		fetcher, urls := history(t, map[string]string{
			"4": previewPage("", 1, 2, 3),
		})
		m := newTestMain(t, fetcher)

		stdout := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"fetch", "durov", "--before", "4", "--format", "rss"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "<rss")
		assert.Contains(t, stdout.String(), "https://t.me/durov/3")
		assert.Equal(t, []string{"https://t.me/s/durov?before=4"}, urls())
	})

	t.Run("writes markdown files", func(t *testing.T) {
		t.Parallel()

		fetcher, _ := history(t, map[string]string{"": previewPage("", 7)})
		m := newTestMain(t, fetcher)
		out := t.TempDir()

		stdout := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"fetch", "durov", "--format", "markdown", "--out", out}, stdout, &bytes.Buffer{})
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "Wrote 1 messages")
		data, err := os.ReadFile(filepath.Join(out, "durov", "7.md"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "post 7")
	})

	t.Run("markdown requires out", func(t *testing.T) {
		t.Parallel()

		fetcher, urls := history(t, nil)
		m := newTestMain(t, fetcher)

		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"fetch", "durov", "--format", "markdown"}, &bytes.Buffer{}, stderr)
		assert.Equal(t, tgfeed.EINVALID, tgfeed.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--out")
		assert.Empty(t, urls())
	})

	t.Run("end cursor reports feed end without fetching", func(t *testing.T) {
		t.Parallel()

		fetcher, urls := history(t, nil)
		m := newTestMain(t, fetcher)

		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"fetch", "durov", "--before", "0"}, &bytes.Buffer{}, stderr)
		assert.Equal(t, tgfeed.EFEEDEND, tgfeed.ErrorCode(err))
		assert.Contains(t, stderr.String(), "no earlier messages")
		assert.Empty(t, urls())
	})
}

func TestMain_Run_SyncThenShow(t *testing.T) {
	t.Parallel()

	fetcher, urls := history(t, map[string]string{
		"":  previewPage("4", 4, 5, 6),
		"4": previewPage("", 1, 2, 3),
	})
	m := newTestMain(t, fetcher)
	ctx := context.Background()

	stdout := &bytes.Buffer{}
	require.NoError(t, m.Run(ctx, []string{"sync", "durov"}, stdout, &bytes.Buffer{}))
	assert.Contains(t, stdout.String(), `Tracking channel "durov"`)
	assert.Contains(t, stdout.String(), "durov: 3 fetched, 3 saved")

	// The stored cursor resumes where the first sync stopped.
	stdout.Reset()
	require.NoError(t, m.Run(ctx, []string{"sync"}, stdout, &bytes.Buffer{}))
	assert.Contains(t, stdout.String(), "durov: 3 fetched, 3 saved")

	stdout.Reset()
	require.NoError(t, m.Run(ctx, []string{"sync"}, stdout, &bytes.Buffer{}))
	assert.Contains(t, stdout.String(), "durov: feed end")

	assert.Equal(t, []string{
		"https://t.me/s/durov?",
		"https://t.me/s/durov?before=4",
	}, urls())

	stdout.Reset()
	require.NoError(t, m.Run(ctx, []string{"list"}, stdout, &bytes.Buffer{}))
	assert.Equal(t, "durov  feed end  Test Channel\n", stdout.String())

	stdout.Reset()
	require.NoError(t, m.Run(ctx, []string{"show", "durov", "--limit", "2"}, stdout, &bytes.Buffer{}))
	var out struct {
		Messages []*tgfeed.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	require.Len(t, out.Messages, 2)
	assert.Equal(t, "1", out.Messages[0].Number)
	assert.Equal(t, "2", out.Messages[1].Number)

	stdout.Reset()
	require.NoError(t, m.Run(ctx, []string{"delete", "durov", "--force"}, stdout, &bytes.Buffer{}))
	assert.Contains(t, stdout.String(), `Deleted channel "durov"`)

	stdout.Reset()
	require.NoError(t, m.Run(ctx, []string{"list"}, stdout, &bytes.Buffer{}))
	assert.Contains(t, stdout.String(), "No channels tracked")
}

func TestMain_Run_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("pages: 0\n"), 0o600))

	m := main.NewMain()
	m.DBPath = filepath.Join(dir, "test.db")

	err := m.Run(context.Background(), []string{"--config", configPath, "list"}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Equal(t, tgfeed.EINVALID, tgfeed.ErrorCode(err))
}
