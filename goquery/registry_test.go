package goquery_test

import (
	"testing"

	"github.com/fwojciec/tgfeed"
	"github.com/fwojciec/tgfeed/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("returns selector for known field", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewDefaultRegistry()

		s, err := registry.Lookup(tgfeed.FieldPhoto)

		require.NoError(t, err)
		assert.Equal(t, tgfeed.FieldPhoto, s.Field)
		assert.Equal(t, ".tgme_widget_message_photo_wrap", s.Query)
		assert.Equal(t, "style", s.Attr)
	})

	t.Run("fails with unknown field", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewDefaultRegistry()

		_, err := registry.Lookup(tgfeed.Field("sticker"))

		require.Error(t, err)
		assert.Equal(t, tgfeed.EUNKNOWNFIELD, tgfeed.ErrorCode(err))
	})

	t.Run("default table defines every field", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewDefaultRegistry()

		for _, s := range goquery.DefaultSelectors() {
			got, err := registry.Lookup(s.Field)
			require.NoError(t, err)
			assert.Equal(t, s, got)
		}
	})
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	t.Run("rejects selector that does not compile", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewRegistry([]tgfeed.FieldSelector{
			{Field: tgfeed.FieldText, Query: "div[[["},
		})

		require.Error(t, err)
		assert.Equal(t, tgfeed.EINVALID, tgfeed.ErrorCode(err))
	})

	t.Run("rejects duplicate field", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewRegistry([]tgfeed.FieldSelector{
			{Field: tgfeed.FieldText, Query: ".a"},
			{Field: tgfeed.FieldText, Query: ".b"},
		})

		require.Error(t, err)
		assert.Equal(t, tgfeed.EINVALID, tgfeed.ErrorCode(err))
	})
}
