package feed

import "context"

// PageSource is the external render/navigation collaborator the collector
// drives. Implementations own page loading, content waits and pagination
// mechanics; the collector only sees batches of RawItems.
// Example usage:
//
//	source := browse.NewHTMLSource(httpClient, profile, startURL, userAgent, timeout)
//	collector := feed.NewCollector(source, maxPages)
//	result, err := collector.Run(ctx, 100)
type PageSource interface {
	// ReadItems returns every entry currently visible on the current page,
	// waiting a bounded time for content. An empty result means the feed is
	// exhausted, not that an error occurred.
	ReadItems(ctx context.Context) ([]RawItem, error)

	// Advance navigates to the next page via the dedicated pagination
	// control and returns once the location has actually changed. It must
	// fail, not hang, when no such control exists.
	Advance(ctx context.Context) error
}
