// Package r25ws fetches a room's reservation list from the R25 web service
// and maps it into the engine's event model.
package r25ws

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/example/roomtimes/internal/logging"
	"github.com/example/roomtimes/internal/schedule"
	"github.com/example/roomtimes/internal/timeutil"
)

// ErrUnavailable signals that the reservation service could not be reached or
// did not answer usefully. Callers must route it to the dedicated
// service-down reply and never treat it as an empty schedule.
var ErrUnavailable = errors.New("r25ws: reservation service unavailable")

const (
	reservationsResource = "rm_rsrvs.xml"
	defaultTimeout       = 10 * time.Second
)

// Config carries the connection settings for the reservation service.
type Config struct {
	// BaseURL is the service root; the reservations resource name is
	// appended to it.
	BaseURL  string
	Username string
	Password string
	// Timeout bounds a single upstream request. Zero means the default ten
	// seconds.
	Timeout time.Duration
	// CacheSize and CacheTTL size the response cache. A non-positive size
	// disables caching.
	CacheSize int
	CacheTTL  time.Duration
}

// Client queries the R25 web service over HTTP basic auth. Identical queries
// inside the cache TTL are answered from an expirable LRU instead of hitting
// the upstream again.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	logger     *slog.Logger
	cache      *expirable.LRU[string, []schedule.Event]
}

// NewClient constructs a reservation client from the provided configuration.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	var cache *expirable.LRU[string, []schedule.Event]
	if cfg.CacheSize > 0 {
		cache = expirable.NewLRU[string, []schedule.Event](cfg.CacheSize, nil, cfg.CacheTTL)
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		cache:      cache,
	}
}

// reservationDocument mirrors the wire shape of the rm_rsrvs.xml response.
// Tag matching is by local name, so the service's namespace prefixes are
// irrelevant.
type reservationDocument struct {
	XMLName      xml.Name      `xml:"space_reservations"`
	Reservations []reservation `xml:"space_reservation"`
}

type reservation struct {
	EventName string `xml:"event_name"`
	StartDT   string `xml:"reservation_start_dt"`
	EndDT     string `xml:"reservation_end_dt"`
}

// Reservations fetches the event list for one space. dayOffset is the "+N"
// day-delta string passed verbatim as the service's start/end date parameters;
// empty means today. The returned events are in non-decreasing start-time
// order, satisfying the formatters' precondition.
func (c *Client) Reservations(ctx context.Context, spaceID, dayOffset string) ([]schedule.Event, error) {
	logger := c.loggerFor(ctx).With("space_id", spaceID, "day_offset", dayOffset)

	cacheKey := spaceID + "|" + dayOffset
	if c.cache != nil {
		if cached, ok := c.cache.Get(cacheKey); ok {
			return cloneEvents(cached), nil
		}
	}

	document, err := c.fetch(ctx, spaceID, dayOffset)
	if err != nil {
		logger.ErrorContext(ctx, "reservation fetch failed", "error", err)
		return nil, err
	}

	events := make([]schedule.Event, 0, len(document.Reservations))
	for _, r := range document.Reservations {
		events = append(events, schedule.Event{
			Name:      r.EventName,
			StartTime: timeutil.TimeOfDay(r.StartDT),
			EndTime:   timeutil.TimeOfDay(r.EndDT),
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime < events[j].StartTime
	})

	if c.cache != nil {
		c.cache.Add(cacheKey, cloneEvents(events))
	}

	logger.InfoContext(ctx, "reservations fetched", "events", len(events))
	return events, nil
}

func (c *Client) fetch(ctx context.Context, spaceID, dayOffset string) (reservationDocument, error) {
	var document reservationDocument

	params := url.Values{}
	params.Set("space_id", spaceID)
	if dayOffset != "" {
		params.Set("start_dt", dayOffset)
		params.Set("end_dt", dayOffset)
	}
	resourceURL := c.baseURL + "/" + reservationsResource + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resourceURL, nil)
	if err != nil {
		return document, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return document, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return document, fmt.Errorf("%w: upstream returned status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := xml.NewDecoder(resp.Body).Decode(&document); err != nil {
		return document, fmt.Errorf("%w: failed to decode response: %v", ErrUnavailable, err)
	}
	return document, nil
}

func (c *Client) loggerFor(ctx context.Context) *slog.Logger {
	if logger := logging.FromContext(ctx); logger != nil {
		return logger
	}
	return c.logger
}

func cloneEvents(events []schedule.Event) []schedule.Event {
	if events == nil {
		return nil
	}
	cloned := make([]schedule.Event, len(events))
	copy(cloned, events)
	return cloned
}
