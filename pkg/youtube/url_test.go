package youtube_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govcongiants/encore/pkg/youtube"
)

func TestNormalize(t *testing.T) {
	const want = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "short link", input: "https://youtu.be/dQw4w9WgXcQ", want: want, ok: true},
		{name: "watch link", input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: want, ok: true},
		{name: "watch link with extra params", input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s&list=PL1", want: want, ok: true},
		{name: "watch link with v later in query", input: "https://www.youtube.com/watch?feature=shared&v=dQw4w9WgXcQ", want: want, ok: true},
		{name: "shorts link", input: "https://www.youtube.com/shorts/dQw4w9WgXcQ", want: want, ok: true},
		{name: "embed link", input: "https://www.youtube.com/embed/dQw4w9WgXcQ", want: want, ok: true},
		{name: "studio editor link", input: "https://studio.youtube.com/video/dQw4w9WgXcQ/edit", want: want, ok: true},
		{name: "surrounding whitespace", input: "  https://youtu.be/dQw4w9WgXcQ  ", want: want, ok: true},
		{name: "empty", input: "", ok: false},
		{name: "whitespace only", input: "   ", ok: false},
		{name: "unrelated url", input: "https://example.com/watch?v=dQw4w9WgXcQ", ok: false},
		{name: "channel page", input: "https://www.youtube.com/@govcongiants", ok: false},
		{name: "studio dashboard without video", input: "https://studio.youtube.com/channel/UC123/analytics", ok: false},
		{name: "id too short", input: "https://youtu.be/abc", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := youtube.Normalize(tt.input)
			if !tt.ok {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeSharedIdentifier(t *testing.T) {
	// Every link shape for one video lands on the same canonical URL, so
	// they share a merge key and one cache entry.
	forms := []string{
		"https://youtu.be/abc123XYZ",
		"https://www.youtube.com/watch?v=abc123XYZ",
		"https://www.youtube.com/watch?v=abc123XYZ&t=10",
		"https://www.youtube.com/shorts/abc123XYZ",
		"https://www.youtube.com/embed/abc123XYZ",
		"https://studio.youtube.com/video/abc123XYZ/edit",
	}

	first, ok := youtube.Normalize(forms[0])
	require.True(t, ok)
	for _, form := range forms[1:] {
		got, ok := youtube.Normalize(form)
		require.True(t, ok, "form %q", form)
		assert.Equal(t, first, got, "form %q", form)
	}
}

func TestWatchURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123XYZ", youtube.WatchURL("abc123XYZ"))
}
