package fbref

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/fbref-teamfit/internal/platform/cache"
	"github.com/riskibarqy/fbref-teamfit/internal/platform/logging"
	"github.com/riskibarqy/fbref-teamfit/internal/platform/metrics"
	"github.com/riskibarqy/fbref-teamfit/internal/platform/resilience"
	"github.com/riskibarqy/fbref-teamfit/internal/usecase"
)

const (
	DefaultBaseURL      = "https://fbref.com"
	DefaultUserAgent    = "Mozilla/5.0 (compatible; teamfit-ingest/1.0)"
	defaultMaxBodyBytes = 16 << 20
)

var errFBrefTransient = crerr.New("fbref transient failure")

type ClientConfig struct {
	HTTPClient   *http.Client
	BaseURL      string
	UserAgent    string
	Timeout      time.Duration
	MaxRetries   int
	RequestDelay time.Duration
	MaxBodyBytes int64
	Cache        cache.Store
	Logger       *logging.Logger
	Metrics      *metrics.Recorder
}

// Client fetches pages from the stats site. Responses are cached by request
// identity and consecutive network requests are spaced by RequestDelay; cache
// hits are served without delay.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	userAgent    string
	maxRetries   int
	maxBodyBytes int64
	pages        *cache.PageCache
	throttle     *resilience.Throttle
	logger       *logging.Logger
	metrics      *metrics.Recorder
}

// Page is one fetched document.
type Page struct {
	URL       string
	Body      []byte
	FromCache bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	var pages *cache.PageCache
	if cfg.Cache != nil {
		pages = cache.NewPageCache(cfg.Cache)
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		userAgent:    userAgent,
		maxRetries:   maxRetries,
		maxBodyBytes: maxBody,
		pages:        pages,
		throttle:     resilience.NewThrottle(cfg.RequestDelay),
		logger:       logger,
		metrics:      cfg.Metrics,
	}
}

func (c *Client) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// FetchPage returns the body of a GET on path, from the cache when a fresh
// copy exists. Non-2xx responses are errors and are never cached.
func (c *Client) FetchPage(ctx context.Context, path string) (Page, error) {
	fullURL := c.URL(path)
	key := requestKey(http.MethodGet, fullURL)

	body, hit, err := c.pages.GetOrLoad(ctx, key, func(ctx context.Context) ([]byte, error) {
		return c.executeRequest(ctx, fullURL)
	})
	if err != nil {
		return Page{}, err
	}

	c.metrics.PageFetched(hit)
	c.logger.DebugContext(ctx, "fbref page fetched", "url", fullURL, "from_cache", hit, "bytes", len(body))
	return Page{URL: fullURL, Body: body, FromCache: hit}, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var (
		lastErr  error
		attempts int
	)
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		attempts = attempt + 1
		if err := c.throttle.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "text/html,application/xhtml+xml")
		req.Header.Set("user-agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: %w: send request: %v", usecase.ErrDependencyUnavailable, errFBrefTransient, err)
		} else {
			raw, readErr := c.readBody(resp.Body)
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: %w: read response body: %v", usecase.ErrDependencyUnavailable, errFBrefTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: %w: status=%d url=%s", usecase.ErrDependencyUnavailable, errFBrefTransient, resp.StatusCode, fullURL)
			default:
				lastErr = fmt.Errorf("%w: status=%d url=%s", usecase.ErrDependencyUnavailable, resp.StatusCode, fullURL)
			}
		}

		if !IsTransient(lastErr) || attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: request failed url=%s", usecase.ErrDependencyUnavailable, fullURL)
	}
	c.logger.WarnContext(ctx, "fbref request failed", "url", fullURL, "attempts", attempts, "transient", IsTransient(lastErr), "error", lastErr)
	return nil, lastErr
}

func (c *Client) readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(body, c.maxBodyBytes)); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.B...), nil
}

// IsTransient reports whether err is a failure worth retrying. Only
// transient failures consume further attempts.
func IsTransient(err error) bool {
	return errors.Is(err, errFBrefTransient)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func requestKey(method, fullURL string) string {
	sum := sha256.Sum256([]byte(method + " " + fullURL))
	return hex.EncodeToString(sum[:])
}
