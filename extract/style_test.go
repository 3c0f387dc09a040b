package extract_test

import (
	"testing"

	"github.com/fwojciec/tgfeed"
	"github.com/fwojciec/tgfeed/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyle(t *testing.T) {
	t.Parallel()

	t.Run("splits declarations into lowercased properties", func(t *testing.T) {
		t.Parallel()

		decls := extract.ParseStyle("Width: 100% ; BACKGROUND-IMAGE:url('https://cdn.example.com/a.jpg')")

		assert.Equal(t, map[string]string{
			"width":            "100%",
			"background-image": "url('https://cdn.example.com/a.jpg')",
		}, decls)
	})

	t.Run("keeps semicolons inside quotes and parentheses", func(t *testing.T) {
		t.Parallel()

		decls := extract.ParseStyle(`background-image:url("https://x/a;b.jpg");padding-top:56%`)

		assert.Equal(t, `url("https://x/a;b.jpg")`, decls["background-image"])
		assert.Equal(t, "56%", decls["padding-top"])
	})

	t.Run("last declaration wins", func(t *testing.T) {
		t.Parallel()

		decls := extract.ParseStyle("color:red;color:blue")

		assert.Equal(t, "blue", decls["color"])
	})

	t.Run("ignores declarations without a colon", func(t *testing.T) {
		t.Parallel()

		decls := extract.ParseStyle("garbage;;width:1px;")

		assert.Equal(t, map[string]string{"width": "1px"}, decls)
	})
}

func TestBackgroundImageURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		style string
		want  string
	}{
		{"single quotes", "background-image:url('http://x/y.jpg')", "http://x/y.jpg"},
		{"double quotes", `background-image:url("http://x/y.jpg")`, "http://x/y.jpg"},
		{"unquoted", "background-image:url(http://x/y.jpg)", "http://x/y.jpg"},
		{"shorthand", "background:#000 url('http://x/y.jpg') no-repeat", "http://x/y.jpg"},
		{"among other declarations", "width:320px;background-image:url('http://x/y.jpg');padding-top:50%", "http://x/y.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := extract.BackgroundImageURL(tt.style)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("returns EMALFORMEDMEDIA without an image", func(t *testing.T) {
		t.Parallel()

		for _, style := range []string{"", "width:100%", "background-image:none", "background-image:url('')"} {
			_, err := extract.BackgroundImageURL(style)

			assert.Equal(t, tgfeed.EMALFORMEDMEDIA, tgfeed.ErrorCode(err), "style %q", style)
		}
	})
}
