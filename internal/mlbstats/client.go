package mlbstats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

const pageSize = 100

// ClientOptions bounds the transport. Zero values fall back to defaults.
type ClientOptions struct {
	BaseURL            string
	GlobalConcurrency  int64
	PerHostConcurrency int64
	RequestsPerSecond  float64
	AttemptTimeout     time.Duration
}

// APIClient is the rate-limited stats API client. It enforces a global
// in-flight cap, a per-host cap and request pacing. It never retries;
// retry is composed by the caller with the retry policy.
type APIClient struct {
	httpClient *http.Client
	baseURL    string

	global         *semaphore.Weighted
	perHostWeight  int64
	limiter        *rate.Limiter
	attemptTimeout time.Duration

	mu    sync.Mutex
	hosts map[string]*semaphore.Weighted
}

// NewClient creates a new stats API client.
func NewClient(opts ClientOptions) *APIClient {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://statsapi.mlb.com"
	}
	if opts.GlobalConcurrency <= 0 {
		opts.GlobalConcurrency = 10
	}
	if opts.PerHostConcurrency <= 0 {
		opts.PerHostConcurrency = 5
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 8
	}
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = 30 * time.Second
	}
	return &APIClient{
		httpClient:     &http.Client{Timeout: opts.AttemptTimeout},
		baseURL:        opts.BaseURL,
		global:         semaphore.NewWeighted(opts.GlobalConcurrency),
		perHostWeight:  opts.PerHostConcurrency,
		limiter:        rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		attemptTimeout: opts.AttemptTimeout,
		hosts:          make(map[string]*semaphore.Weighted),
	}
}

// Ensure APIClient implements the StatsClient interface.
var _ StatsClient = (*APIClient)(nil)

// GameLog fetches the full game log for one (player, season, level, group),
// following pagination until all games are returned.
func (c *APIClient) GameLog(ctx context.Context, req FetchRequest) (*GameLogPayload, error) {
	var (
		all    GameLogPayload
		offset = 0
	)
	for {
		page, err := c.fetchPage(ctx, req, offset, pageSize)
		if err != nil {
			return nil, err
		}
		all.TotalGames = page.TotalGames
		all.Games = append(all.Games, page.Games...)

		log.Debug("Fetched game log page",
			"playerID", req.PlayerID, "season", req.Season, "level", req.Level,
			"offset", offset, "count", len(page.Games), "total", page.TotalGames)

		offset += len(page.Games)
		if len(page.Games) < pageSize || offset >= page.TotalGames {
			break
		}
	}
	return &all, nil
}

// Probe issues a single-row request to check whether any data exists for
// the (player, season, level, group). A NoData response is not an error.
func (c *APIClient) Probe(ctx context.Context, req FetchRequest) (bool, error) {
	page, err := c.fetchPage(ctx, req, 0, 1)
	if err != nil {
		if IsKind(err, KindNoData) {
			return false, nil
		}
		return false, err
	}
	return page.TotalGames > 0, nil
}

func (c *APIClient) fetchPage(ctx context.Context, req FetchRequest, offset, limit int) (*GameLogPayload, error) {
	u := fmt.Sprintf("%s/api/v1/players/%d/gamelog", c.baseURL, req.PlayerID)
	q := url.Values{}
	q.Set("season", fmt.Sprintf("%d", req.Season))
	q.Set("sportId", fmt.Sprintf("%d", req.Level.SportID()))
	q.Set("group", string(req.Group))
	q.Set("offset", fmt.Sprintf("%d", offset))
	q.Set("limit", fmt.Sprintf("%d", limit))

	body, err := c.get(ctx, u+"?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var payload GameLogPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		// Keep a slice of the offending body; decode errors are useless
		// without a hint of what came over the wire.
		return nil, &FetchError{Kind: KindMalformed, Status: http.StatusOK, Err: fmt.Errorf("%w; payload excerpt: %.120s", err, body)}
	}
	return &payload, nil
}

// get performs one bounded HTTP attempt and classifies failures.
func (c *APIClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Kind: KindTimeout, Err: err}
	}
	if err := c.global.Acquire(ctx, 1); err != nil {
		return nil, &FetchError{Kind: KindTimeout, Err: err}
	}
	defer c.global.Release(1)

	host := hostOf(rawURL)
	sem := c.hostSemaphore(host)
	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, &FetchError{Kind: KindTimeout, Err: err}
	}
	defer sem.Release(1)

	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindMalformed, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "afinewinedynasty-collector/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || attemptCtx.Err() != nil {
			return nil, &FetchError{Kind: KindTimeout, Err: err}
		}
		return nil, &FetchError{Kind: KindServerError, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &FetchError{Kind: KindMalformed, Status: resp.StatusCode, Err: err}
		}
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &FetchError{Kind: KindRateLimited, Status: resp.StatusCode}
	case resp.StatusCode == http.StatusNotFound:
		return nil, &FetchError{Kind: KindNoData, Status: resp.StatusCode}
	case resp.StatusCode >= 500:
		return nil, &FetchError{Kind: KindServerError, Status: resp.StatusCode}
	default:
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received unexpected HTTP status from stats API", "status", resp.StatusCode, "body", string(body))
		return nil, &FetchError{Kind: KindMalformed, Status: resp.StatusCode}
	}
}

func (c *APIClient) hostSemaphore(host string) *semaphore.Weighted {
	c.mu.Lock()
	defer c.mu.Unlock()
	sem, ok := c.hosts[host]
	if !ok {
		sem = semaphore.NewWeighted(c.perHostWeight)
		c.hosts[host] = sem
	}
	return sem
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Host
}
