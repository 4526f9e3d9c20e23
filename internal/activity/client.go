package activity

import (
	"context"
	"time"
)

// Client fetches normalized activity records for one stream.
type Client interface {
	// FetchRange returns every record the stream holds between start and
	// end inclusive. An error means the stream is unavailable, which the
	// caller must keep distinct from an empty result.
	FetchRange(ctx context.Context, start, end time.Time) ([]Record, error)
}

// Config holds the connection settings for one activity API.
type Config struct {
	BaseURL string

	// Location narrows the standup query server-side; ignored by trackify.
	Location string

	// Performance settings
	RequestDelay time.Duration
	Timeout      time.Duration
}

// NewClient creates an HTTP client for the given stream.
func NewClient(stream Stream, cfg Config) Client {
	return newHTTPClient(stream, cfg)
}
