// Package youtube confirms publish dates for YouTube links. It canonicalizes
// the many link shapes that reach the export (short links, watch links,
// shorts, embeds, studio editor links) down to one watch URL per video, and
// resolves that URL to the video's publish date through a cached lookup.
package youtube

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	// videoIDPattern matches the public link shapes that carry a video ID.
	videoIDPattern = regexp.MustCompile(`(?:youtu\.be/|youtube\.com/(?:watch\?v=|shorts/|embed/))([A-Za-z0-9_-]{6,})`)

	// studioIDPattern matches internal editor links, which only the team
	// ever pastes into the export.
	studioIDPattern = regexp.MustCompile(`studio\.youtube\.com/video/([A-Za-z0-9_-]{6,})`)
)

// WatchURL returns the canonical watch URL for a video ID. Every link shape
// normalizes to this form, so it doubles as the cache and merge key.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// Normalize extracts the canonical watch URL from any supported link shape.
// Short links, watch links (including ones with extra query parameters),
// shorts, embeds, and studio links for the same video all normalize to the
// same URL. Empty or unrecognized input yields ok=false and the lookup is
// skipped.
func Normalize(raw string) (string, bool) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return "", false
	}

	if strings.Contains(u, "studio.youtube.com") {
		if m := studioIDPattern.FindStringSubmatch(u); m != nil {
			return WatchURL(m[1]), true
		}
		return "", false
	}

	if m := videoIDPattern.FindStringSubmatch(u); m != nil {
		return WatchURL(m[1]), true
	}

	// Watch URLs where v is not the first query parameter escape the
	// pattern above; recover the ID from the parsed query.
	parsed, err := url.Parse(u)
	if err != nil {
		return "", false
	}
	if strings.Contains(parsed.Host, "youtube.com") && parsed.Path == "/watch" {
		if id := parsed.Query().Get("v"); id != "" {
			return WatchURL(id), true
		}
	}
	return "", false
}
