package youtube

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/govcongiants/encore/pkg/logging"
)

const (
	// defaultTimeout bounds one watch-page fetch.
	defaultTimeout = 20 * time.Second

	// execTimeout bounds one extraction-tool invocation.
	execTimeout = 30 * time.Second

	// maxBodyBytes caps how much of a watch page is read. The metadata
	// fields usually sit in the first chunk but can appear later.
	maxBodyBytes = 2_000_000

	// userAgent makes the fetch look like a browser; the page serves the
	// structured metadata variant to browsers.
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123 Safari/537.36"

	// extractorBinary is the external tool used as a lookup fallback.
	extractorBinary = "yt-dlp"
)

// publishDatePatterns are the structured-metadata fields a watch page may
// carry the publish date in, tried in order.
var publishDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`"publishDate"\s*:\s*"(\d{4}-\d{2}-\d{2})"`),
	regexp.MustCompile(`"uploadDate"\s*:\s*"(\d{4}-\d{2}-\d{2})"`),
	regexp.MustCompile(`"datePublished"\s*:\s*"(\d{4}-\d{2}-\d{2})"`),
	regexp.MustCompile(`itemprop="datePublished"\s+content="(\d{4}-\d{2}-\d{2})"`),
	regexp.MustCompile(`itemprop="uploadDate"\s+content="(\d{4}-\d{2}-\d{2})"`),
}

// uploadDatePattern matches the extractor tool's YYYYMMDD output.
var uploadDatePattern = regexp.MustCompile(`^\d{8}$`)

const isoDate = "2006-01-02"

// Client resolves canonical watch URLs to publish dates. Lookups consult
// the cache first, then scrape the watch page, then fall back to the
// external extractor; every outcome, including "no date found", is cached
// so each video costs at most one lookup per run.
type Client struct {
	cache    *Cache
	httpc    *http.Client
	execPath string
	noExec   bool
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client used for watch-page fetches.
func WithHTTPClient(httpc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithoutExec disables the external-extractor fallback.
func WithoutExec() ClientOption {
	return func(c *Client) {
		c.noExec = true
	}
}

// NewClient creates a lookup client over the given cache.
func NewClient(cache *Cache, opts ...ClientOption) *Client {
	c := &Client{
		cache: cache,
		httpc: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PublishDate resolves a raw link to the video's publish date in ISO form.
// ok is false when the link carries no video ID, when a cached "no date"
// entry exists, or when every lookup path comes up empty. Lookup failures
// are never errors: they cache as misses and the caller falls through to
// its next date source.
func (c *Client) PublishDate(ctx context.Context, rawURL string) (string, bool) {
	norm, ok := Normalize(rawURL)
	if !ok {
		return "", false
	}

	if cached, hit := c.cache.Get(norm); hit {
		if _, err := time.Parse(isoDate, cached); err == nil {
			return cached, true
		}
		if cached == "" {
			// Confirmed miss from an earlier attempt.
			return "", false
		}
		// Unparseable entry: treat as absent and confirm again.
	}

	if d, found := c.scrapeWatchPage(ctx, norm); found {
		c.cache.Put(norm, d)
		return d, true
	}

	if !c.noExec {
		if d, found := c.runExtractor(ctx, norm); found {
			c.cache.Put(norm, d)
			return d, true
		}
	}

	c.cache.Put(norm, "")
	return "", false
}

// scrapeWatchPage fetches the watch page and scans it for structured
// publish-date metadata. Any fetch failure reads as "not found".
func (c *Client) scrapeWatchPage(ctx context.Context, watchURL string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpc.Do(req)
	if err != nil {
		logging.Debug().Err(err).Str("url", watchURL).Msg("Watch page fetch failed")
		return "", false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logging.Debug().Int("status", resp.StatusCode).Str("url", watchURL).Msg("Watch page fetch refused")
		return "", false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil && len(body) == 0 {
		return "", false
	}
	return extractPublishDate(string(body))
}

// extractPublishDate scans page HTML for the known metadata fields.
func extractPublishDate(html string) (string, bool) {
	for _, pattern := range publishDatePatterns {
		m := pattern.FindStringSubmatch(html)
		if m == nil {
			continue
		}
		if _, err := time.Parse(isoDate, m[1]); err != nil {
			continue
		}
		return m[1], true
	}
	return "", false
}

// runExtractor asks the external tool for the upload date. The tool is
// optional; its absence or failure is an ordinary miss.
func (c *Client) runExtractor(ctx context.Context, watchURL string) (string, bool) {
	bin := c.extractorPath()
	if bin == "" {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, execTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, bin,
		"--no-warnings", "--skip-download", "--print", "%(upload_date)s", watchURL).Output()
	if err != nil {
		logging.Debug().Err(err).Str("url", watchURL).Msg("Extractor fallback failed")
		return "", false
	}

	raw := strings.TrimSpace(string(out))
	if !uploadDatePattern.MatchString(raw) {
		return "", false
	}
	d, err := time.Parse("20060102", raw)
	if err != nil {
		return "", false
	}
	return d.Format(isoDate), true
}

// extractorPath locates the extractor on PATH, then in the user-local bin
// directories where pip tends to install it.
func (c *Client) extractorPath() string {
	if c.execPath != "" {
		return c.execPath
	}
	if p, err := exec.LookPath(extractorBinary); err == nil {
		c.execPath = p
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	for _, p := range []string{
		filepath.Join(home, "Library", "Python", "3.9", "bin", extractorBinary),
		filepath.Join(home, ".local", "bin", extractorBinary),
	} {
		if _, err := os.Stat(p); err == nil {
			c.execPath = p
			return p
		}
	}
	return ""
}
