package browse

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/feedaudit/feed-audit/app/feed"
)

var _ feed.PageSource = (*HTMLSource)(nil)

// HTMLSource reads a paginated HTML listing over HTTP and extracts rows with
// goquery according to a site Profile. Navigation is strictly sequential:
// Advance only moves the current location, the next ReadItems performs the
// actual load.
type HTMLSource struct {
	httpClient *http.Client
	profile    *Profile
	userAgent  string
	timeout    time.Duration

	currentURL string
	doc        *goquery.Document
}

func NewHTMLSource(httpClient *http.Client, profile *Profile, startURL, userAgent string, timeout time.Duration) *HTMLSource {
	return &HTMLSource{
		httpClient: httpClient,
		profile:    profile,
		userAgent:  userAgent,
		timeout:    timeout,
		currentURL: startURL,
	}
}

// ReadItems fetches the current page and extracts one RawItem per listing
// row. The fetch is bounded by the configured timeout; a page that renders
// no rows yields an empty slice, not an error.
func (s *HTMLSource) ReadItems(ctx context.Context) ([]feed.RawItem, error) {
	doc, err := s.fetch(ctx, s.currentURL)
	if err != nil {
		return nil, err
	}
	s.doc = doc

	var items []feed.RawItem
	doc.Find(s.profile.RowSelector).Each(func(_ int, row *goquery.Selection) {
		items = append(items, s.extractRow(row))
	})

	slog.Debug("Extracted listing rows", "url", s.currentURL, "items", len(items))
	return items, nil
}

// Advance locates the dedicated pagination control on the last loaded page
// and moves the current location to its target. It fails when the control
// is missing or when following it would not change the location.
func (s *HTMLSource) Advance(ctx context.Context) error {
	if s.doc == nil {
		return fmt.Errorf("no page loaded")
	}

	link := s.doc.Find(s.profile.NextSelector).First()
	if link.Length() == 0 {
		return fmt.Errorf("pagination control %q not found", s.profile.NextSelector)
	}

	href, ok := link.Attr("href")
	if !ok || href == "" {
		return fmt.Errorf("pagination control %q has no href", s.profile.NextSelector)
	}

	next, err := s.resolveURL(href)
	if err != nil {
		return fmt.Errorf("failed to resolve next page URL %q: %w", href, err)
	}
	if next == s.currentURL {
		return fmt.Errorf("pagination control did not change location (%s)", next)
	}

	slog.Debug("Advancing to next page", "from", s.currentURL, "to", next)
	s.currentURL = next
	s.doc = nil
	return nil
}

func (s *HTMLSource) extractRow(row *goquery.Selection) feed.RawItem {
	item := feed.RawItem{
		Title: strings.TrimSpace(row.Find(s.profile.TitleSelector).First().Text()),
	}

	ageRoot := row
	if s.profile.AgeInNextRow {
		ageRoot = row.Next()
	}
	age := ageRoot.Find(s.profile.AgeSelector).First()
	item.AgeText = strings.TrimSpace(age.Text())
	item.TimeHint = strings.TrimSpace(age.AttrOr(s.profile.HintAttr, ""))

	return item
}

func (s *HTMLSource) fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return doc, nil
}

func (s *HTMLSource) resolveURL(href string) (string, error) {
	base, err := url.Parse(s.currentURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
