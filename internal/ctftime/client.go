package ctftime

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/ctfwatch/ctf-announce/internal/logger"
)

const (
	// UserAgent identifies the announcer to the CTFtime API.
	UserAgent = "ctf-announce/1.0 (github.com/ctfwatch/ctf-announce)"

	// DefaultMaxEvents caps how many entries a single fetch asks for.
	DefaultMaxEvents = 100

	timeout = 30 * time.Second
)

// Client fetches upcoming events from the CTFtime API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxEvents  int
}

// New creates a Client. An empty baseURL uses the public CTFtime API and a
// non-positive maxEvents uses DefaultMaxEvents.
func New(baseURL string, maxEvents int) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if maxEvents <= 0 {
		maxEvents = DefaultMaxEvents
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:   baseURL,
		maxEvents: maxEvents,
	}
}

// FetchEvents returns the events whose start time falls within the window,
// sorted by start time ascending. It performs exactly one GET and does not
// retry; retry policy belongs to whatever schedules the run.
func (c *Client) FetchEvents(ctx context.Context, w Window) ([]Event, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid window: %w", err)
	}

	reqURL := fmt.Sprintf("%s/api/v1/events/?limit=%d&start=%d&finish=%d",
		c.baseURL, c.maxEvents, w.Start.Unix(), w.End.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	logger.Debug("fetching events", logger.Fields{"url": reqURL})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("reading response: %w", err)}
	}

	return parseEvents(body, w)
}

// parseEvents decodes the feed body and applies window filtering. Entries
// are decoded one at a time so a single malformed record is skipped instead
// of failing the whole run.
func parseEvents(body []byte, w Window) ([]Event, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &ParseError{Err: err}
	}

	events := make([]Event, 0, len(raw))
	for i, entry := range raw {
		var evt Event
		if err := json.Unmarshal(entry, &evt); err != nil {
			logger.Warn("skipping malformed event entry", logger.Fields{
				"index": i,
				"error": err.Error(),
			})
			continue
		}

		evt.normalize()

		if !w.Contains(evt.Start) {
			continue
		}
		events = append(events, evt)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})

	return events, nil
}
