package tgfeed_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/tgfeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContents_JSON(t *testing.T) {
	t.Parallel()

	t.Run("round-trips every content kind", func(t *testing.T) {
		t.Parallel()

		views := "1.2K"
		msg := &tgfeed.Message{
			Number: "42",
			Author: "Channel",
			Date:   "2024-01-15T10:30:00+00:00",
			Views:  &views,
			Contents: tgfeed.Contents{
				tgfeed.Text{Content: "hello"},
				tgfeed.Photo{URL: "http://x/y.jpg"},
				tgfeed.Video{URL: "https://t.me/c/42", Thumbnail: "http://x/t.jpg", Duration: "0:15"},
				tgfeed.Voice{URL: "http://x/v.ogg", Duration: "0:03"},
				tgfeed.Document{URL: "https://t.me/c/42", Title: []string{"report.pdf"}, Size: []string{"1.5 MB"}},
				tgfeed.Location{URL: "https://www.openstreetmap.org/?lat=1&lon=2&zoom=3&layers=M", Latitude: "1", Longitude: "2"},
				tgfeed.Poll{Question: "Q?", Type: "Anonymous poll", Options: []tgfeed.PollOption{{Percent: "60%", Value: "Yes"}}},
				tgfeed.UnsupportedMedia{URL: "https://t.me/c/42"},
			},
		}

		data, err := json.Marshal(msg)
		require.NoError(t, err)

		var got tgfeed.Message
		require.NoError(t, json.Unmarshal(data, &got))

		assert.Equal(t, msg, &got)
	})

	t.Run("writes type discriminator next to variant fields", func(t *testing.T) {
		t.Parallel()

		contents := tgfeed.Contents{
			tgfeed.Text{Content: "hello"},
			tgfeed.Poll{Question: "Q?", Type: "Quiz", Options: []tgfeed.PollOption{}},
		}

		data, err := json.Marshal(contents)
		require.NoError(t, err)

		assert.JSONEq(t, `[
			{"type":"text","content":"hello"},
			{"type":"poll","poll_question":"Q?","poll_type":"Quiz","poll_options":[]}
		]`, string(data))
	})

	t.Run("writes absent views and voters as null", func(t *testing.T) {
		t.Parallel()

		msg := &tgfeed.Message{Number: "1", Author: "a", Date: "d", Contents: tgfeed.Contents{}}

		data, err := json.Marshal(msg)
		require.NoError(t, err)

		assert.JSONEq(t, `{"number":"1","author":"a","date":"d","views":null,"voters":null,"contents":[]}`, string(data))
	})

	t.Run("rejects unknown content type", func(t *testing.T) {
		t.Parallel()

		var contents tgfeed.Contents
		err := json.Unmarshal([]byte(`[{"type":"sticker","url":"x"}]`), &contents)

		require.Error(t, err)
		assert.Equal(t, tgfeed.EINVALID, tgfeed.ErrorCode(err))
	})
}

func TestMessage_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts complete metadata", func(t *testing.T) {
		t.Parallel()

		msg := &tgfeed.Message{Number: "1", Author: "a", Date: "d"}

		assert.NoError(t, msg.Validate())
	})

	t.Run("requires number author and date", func(t *testing.T) {
		t.Parallel()

		for _, msg := range []*tgfeed.Message{
			{Author: "a", Date: "d"},
			{Number: "1", Date: "d"},
			{Number: "1", Author: "a"},
		} {
			err := msg.Validate()
			assert.Equal(t, tgfeed.EMISSINGMETADATA, tgfeed.ErrorCode(err))
		}
	})
}

func TestMessage_URL(t *testing.T) {
	t.Parallel()

	msg := &tgfeed.Message{Number: "42"}

	assert.Equal(t, "https://t.me/durov/42", msg.URL("durov"))
}

func TestCursor_Exhausted(t *testing.T) {
	t.Parallel()

	assert.True(t, tgfeed.CursorEnd.Exhausted())
	assert.False(t, tgfeed.CursorLatest.Exhausted())
	assert.False(t, tgfeed.Cursor("12345").Exhausted())
}
