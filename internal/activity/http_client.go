package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type httpClient struct {
	stream      Stream
	cfg         Config
	httpClient  *http.Client
	lastRequest time.Time

	// Session cache: report regeneration for the same range within a few
	// minutes must not hammer the upstream API.
	cache      map[string]*cacheEntry
	cacheMutex sync.Mutex
}

type cacheEntry struct {
	Records    []Record
	Expiration time.Time
}

const cacheTTL = 10 * time.Minute

func newHTTPClient(stream Stream, cfg Config) *httpClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &httpClient{
		stream: stream,
		cfg:    cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache: make(map[string]*cacheEntry),
	}
}

func (c *httpClient) getFromCache(key string) ([]Record, bool) {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	entry, ok := c.cache[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.Expiration) {
		delete(c.cache, key)
		return nil, false
	}
	log.Debug().Str("stream", string(c.stream)).Str("key", key).Msg("Cache hit")
	return entry.Records, true
}

func (c *httpClient) addToCache(key string, records []Record) {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	c.cache[key] = &cacheEntry{
		Records:    records,
		Expiration: time.Now().Add(cacheTTL),
	}
}

func (c *httpClient) throttle() {
	if c.cfg.RequestDelay == 0 {
		return
	}
	elapsed := time.Since(c.lastRequest)
	if elapsed < c.cfg.RequestDelay {
		wait := c.cfg.RequestDelay - elapsed
		log.Debug().Str("stream", string(c.stream)).Dur("wait", wait).Msg("Throttling activity request")
		time.Sleep(wait)
	}
	c.lastRequest = time.Now()
}

func (c *httpClient) FetchRange(ctx context.Context, start, end time.Time) ([]Record, error) {
	startDate := start.UTC().Format("2006-01-02")
	endDate := end.UTC().Format("2006-01-02")

	cacheKey := fmt.Sprintf("%s:%s:%s", c.stream, startDate, endDate)
	if records, ok := c.getFromCache(cacheKey); ok {
		return records, nil
	}

	c.throttle()

	params := url.Values{}
	params.Set("startDate", startDate)
	params.Set("endDate", endDate)
	if c.stream == StreamStandup && c.cfg.Location != "" {
		params.Set("location", c.cfg.Location)
	}

	fetchURL := fmt.Sprintf("%s%s?%s", c.cfg.BaseURL, c.path(), params.Encode())
	log.Info().Str("stream", string(c.stream)).Msg("Requesting activity records")
	log.Debug().Str("url", fetchURL).Msg("Activity fetch details")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s API unreachable: %w", c.stream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, fmt.Errorf("%s API authentication failed (%d)", c.stream, resp.StatusCode)
		case http.StatusTooManyRequests:
			return nil, fmt.Errorf("%s API rate limit exceeded (429)", c.stream)
		default:
			return nil, fmt.Errorf("%s API returned status %d", c.stream, resp.StatusCode)
		}
	}

	records, err := c.decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", c.stream, err)
	}

	c.addToCache(cacheKey, records)
	return records, nil
}

func (c *httpClient) path() string {
	if c.stream == StreamTrackify {
		return "/api/timesheets"
	}
	return "/api/standups"
}

func (c *httpClient) decode(body io.Reader) ([]Record, error) {
	switch c.stream {
	case StreamTrackify:
		var payload struct {
			Data []trackifyDTO `json:"data"`
		}
		if err := json.NewDecoder(body).Decode(&payload); err != nil {
			return nil, err
		}
		records := make([]Record, 0, len(payload.Data))
		for _, dto := range payload.Data {
			records = append(records, dto.toRecord())
		}
		return records, nil
	default:
		var payload struct {
			Data []standupDTO `json:"data"`
		}
		if err := json.NewDecoder(body).Decode(&payload); err != nil {
			return nil, err
		}
		records := make([]Record, 0, len(payload.Data))
		for _, dto := range payload.Data {
			records = append(records, dto.toRecord())
		}
		return records, nil
	}
}
