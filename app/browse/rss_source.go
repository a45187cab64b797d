package browse

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/feedaudit/feed-audit/app/feed"
)

const defaultRSSPageSize = 30

var _ feed.PageSource = (*RSSSource)(nil)

// RSSSource audits an RSS/Atom feed's ordering by serving its entries in
// fixed-size pages. The feed document is fetched once on the first read;
// the item's own published string is passed through as the absolute time
// hint, there is no relative age text in feed entries.
type RSSSource struct {
	httpClient *http.Client
	feedURL    string
	userAgent  string
	timeout    time.Duration
	pageSize   int

	fetched bool
	items   []feed.RawItem
	offset  int
}

func NewRSSSource(httpClient *http.Client, feedURL, userAgent string, timeout time.Duration) *RSSSource {
	return &RSSSource{
		httpClient: httpClient,
		feedURL:    feedURL,
		userAgent:  userAgent,
		timeout:    timeout,
		pageSize:   defaultRSSPageSize,
	}
}

func (s *RSSSource) ReadItems(ctx context.Context) ([]feed.RawItem, error) {
	if !s.fetched {
		if err := s.load(ctx); err != nil {
			return nil, err
		}
	}

	if s.offset >= len(s.items) {
		return nil, nil
	}

	end := min(s.offset+s.pageSize, len(s.items))
	return s.items[s.offset:end], nil
}

// Advance moves the window to the next page of the already-fetched feed.
// Exhaustion surfaces as an empty ReadItems result on the following read.
func (s *RSSSource) Advance(ctx context.Context) error {
	if !s.fetched {
		return fmt.Errorf("no feed loaded")
	}
	s.offset += s.pageSize
	return nil
}

func (s *RSSSource) load(ctx context.Context) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", s.feedURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse feed: %w", err)
	}

	s.items = make([]feed.RawItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		s.items = append(s.items, feed.RawItem{
			Title:    item.Title,
			TimeHint: item.Published,
		})
	}
	s.fetched = true

	slog.Debug("Feed loaded", "url", s.feedURL, "title", parsed.Title, "items", len(s.items))
	return nil
}
