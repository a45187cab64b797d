package browse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const rssFixture = `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <item>
      <title>Item One</title>
      <link>https://example.com/1</link>
      <pubDate>Mon, 24 Aug 2026 12:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Item Two</title>
      <link>https://example.com/2</link>
      <pubDate>Mon, 24 Aug 2026 11:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Item Three</title>
      <link>https://example.com/3</link>
      <pubDate>Mon, 24 Aug 2026 10:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func newFeedServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRSSSourcePagesThroughFeed(t *testing.T) {
	server := newFeedServer(t, rssFixture)
	source := NewRSSSource(server.Client(), server.URL, "Feed Audit Test/1.0", 5*time.Second)
	source.pageSize = 2

	items, err := source.ReadItems(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items on first page, got: %d", len(items))
	}
	if items[0].Title != "Item One" {
		t.Errorf("Expected title 'Item One', got: %s", items[0].Title)
	}
	if items[0].TimeHint != "Mon, 24 Aug 2026 12:00:00 GMT" {
		t.Errorf("Expected published string as time hint, got: %s", items[0].TimeHint)
	}
	if items[0].AgeText != "" {
		t.Errorf("Feed entries carry no relative age text, got: %s", items[0].AgeText)
	}

	if err := source.Advance(context.Background()); err != nil {
		t.Fatalf("Expected advance to succeed, got: %v", err)
	}

	items, err = source.ReadItems(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item on second page, got: %d", len(items))
	}
	if items[0].Title != "Item Three" {
		t.Errorf("Expected title 'Item Three', got: %s", items[0].Title)
	}

	if err := source.Advance(context.Background()); err != nil {
		t.Fatalf("Expected advance to succeed, got: %v", err)
	}

	items, err = source.ReadItems(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected exhausted feed to yield 0 items, got: %d", len(items))
	}
}

func TestRSSSourceAdvanceBeforeLoad(t *testing.T) {
	server := newFeedServer(t, rssFixture)
	source := NewRSSSource(server.Client(), server.URL, "Feed Audit Test/1.0", 5*time.Second)

	if err := source.Advance(context.Background()); err == nil {
		t.Fatal("Expected error when advancing before the feed is loaded")
	}
}

func TestRSSSourceInvalidFeed(t *testing.T) {
	server := newFeedServer(t, "not xml at all")
	source := NewRSSSource(server.Client(), server.URL, "Feed Audit Test/1.0", 5*time.Second)

	if _, err := source.ReadItems(context.Background()); err == nil {
		t.Fatal("Expected error for invalid feed document")
	}
}

func TestRSSSourceHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	source := NewRSSSource(server.Client(), server.URL, "Feed Audit Test/1.0", 5*time.Second)
	if _, err := source.ReadItems(context.Background()); err == nil {
		t.Fatal("Expected error for HTTP 404")
	}
}
