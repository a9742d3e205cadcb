package fetcher

import (
	"context"
	"fmt"
	"io"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/sgmodkit/sgmerge/internal/domain"
)

// Client resolves source descriptors to text. URLs go over HTTP with
// retry and optional caching; filesystem paths are read directly.
type Client struct {
	tlsClient    tls_client.HttpClient
	userAgent    string
	hostHeaders  HostHeaders
	retrier      *Retrier
	preferLocal  bool
	cache        domain.Cache
	cacheEnabled bool
	cacheTTL     time.Duration
}

// ClientOptions contains options for creating a Client
type ClientOptions struct {
	Timeout     time.Duration
	Retries     int
	BackoffBase float64
	PreferLocal bool
	UserAgent   string
	HostHeaders HostHeaders
	EnableCache bool
	CacheTTL    time.Duration
	Cache       domain.Cache
	ProxyURL    string
}

// NewClient creates a new fetch client
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	tlsOpts := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(opts.Timeout.Seconds())),
		tls_client.WithClientProfile(profiles.Chrome_131),
	}

	if opts.ProxyURL != "" {
		tlsOpts = append(tlsOpts, tls_client.WithProxyUrl(opts.ProxyURL))
	}

	tlsClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), tlsOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tls client: %w", err)
	}

	retrier := NewRetrier(RetrierOptions{
		MaxRetries: opts.Retries,
		Base:       opts.BackoffBase,
	})

	return &Client{
		tlsClient:    tlsClient,
		userAgent:    opts.UserAgent,
		hostHeaders:  opts.HostHeaders,
		retrier:      retrier,
		preferLocal:  opts.PreferLocal,
		cache:        opts.Cache,
		cacheEnabled: opts.EnableCache,
		cacheTTL:     opts.CacheTTL,
	}, nil
}

// Fetch resolves one source descriptor to text.
//
// Local paths are read directly. For URLs, a prefer-local override (the
// URL's base filename found next to the working directory or executable)
// short-circuits the network entirely; otherwise the URL is fetched with
// retry and exponential backoff. When all attempts fail, the returned
// error is the last attempt's FetchError.
func (c *Client) Fetch(ctx context.Context, source string) (string, error) {
	if !IsURL(source) {
		return ReadLocal(source)
	}

	if c.preferLocal {
		if override, ok := LocalOverridePath(source); ok {
			return ReadLocal(override)
		}
	}

	if c.cacheEnabled && c.cache != nil {
		if data, err := c.cache.Get(ctx, source); err == nil {
			return string(data), nil
		}
	}

	text, err := RetryWithValue(ctx, c.retrier, func() (string, error) {
		return c.doRequest(ctx, source)
	})
	if err != nil {
		return "", err
	}

	if c.cacheEnabled && c.cache != nil {
		_ = c.cache.Set(ctx, source, []byte(text), c.cacheTTL)
	}

	return text, nil
}

// doRequest performs one HTTP GET attempt.
func (c *Client) doRequest(ctx context.Context, targetURL string) (string, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, targetURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range RequestHeaders(targetURL, c.userAgent, c.hostHeaders) {
		req.Header.Set(k, v)
	}

	resp, err := c.tlsClient.Do(req)
	if err != nil {
		return "", domain.NewFetchError(targetURL, 0, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	// Any non-2xx response counts as a failed attempt.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", domain.NewFetchError(targetURL, resp.StatusCode, fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.NewFetchError(targetURL, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err))
	}

	return DecodeText(body), nil
}

// Close releases client resources
func (c *Client) Close() error {
	return nil
}
