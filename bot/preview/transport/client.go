package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sony/gobreaker"
)

// maxBodyBytes caps how much of a provider response is read.
const maxBodyBytes = 16 << 20

var errServerStatus = errors.New("transport: server error status")

// Options configures a provider HTTP client.
type Options struct {
	// Name labels the circuit breaker ("github-api").
	Name string

	// UserAgent is sent with every request.
	UserAgent string

	// Timeout bounds a whole request including the body read. Zero means none.
	Timeout time.Duration

	// Transport overrides the underlying round tripper. Nil keeps the pooled default.
	Transport http.RoundTripper

	// CircuitBreaker trips after repeated transport failures or 5xx responses.
	CircuitBreaker bool
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client issues one-shot GET requests. It never retries and is safe for concurrent use.
type Client struct {
	httpClient *retryablehttp.Client
	breaker    *gobreaker.CircuitBreaker
	userAgent  string
}

// New creates a Client.
func New(opts Options) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 0
	httpClient.Logger = nil
	// Hand back the response as-is so callers see the real status code.
	httpClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	httpClient.HTTPClient.Timeout = opts.Timeout
	if opts.Transport != nil {
		httpClient.HTTPClient.Transport = opts.Transport
	}

	c := &Client{
		httpClient: httpClient,
		userAgent:  opts.UserAgent,
	}

	if opts.CircuitBreaker {
		name := opts.Name
		if name == "" {
			name = "provider-api"
		}
		settings := gobreaker.Settings{
			Name:        name,
			MaxRequests: 3,
			Interval:    10 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 5
			},
		}
		c.breaker = gobreaker.NewCircuitBreaker(settings)
	}

	return c
}

// Get issues a GET with the given extra headers and reads the whole body.
// An error is returned only when no response was obtained.
func (c *Client) Get(ctx context.Context, url string, header http.Header) (*Response, error) {
	if c.breaker == nil {
		return c.do(ctx, url, header)
	}

	var resp *Response
	_, err := c.breaker.Execute(func() (interface{}, error) {
		r, err := c.do(ctx, url, header)
		if err != nil {
			return nil, err
		}
		resp = r
		if r.StatusCode >= http.StatusInternalServerError {
			return nil, errServerStatus
		}
		return nil, nil
	})
	if errors.Is(err, errServerStatus) {
		return resp, nil
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, url string, header http.Header) (*Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	for key, values := range header {
		req.Header[key] = append([]string(nil), values...)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}
