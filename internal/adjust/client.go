package adjust

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/roivaz/adjust-mcp/internal/logging"
)

const (
	DefaultBaseURL = "https://automate.adjust.com"
	ReportPath     = "/reports-service/report"

	maxBodyBytes = 32 << 20
)

var (
	// ErrMissingToken is returned when no Adjust token is configured.
	ErrMissingToken = errors.New("adjust auth token is required: set ADJUST_AUTH_TOKEN, pass --token, or give it as the first argument")
	// ErrResponseTooLarge is wrapped by the APIError returned for bodies over
	// the read limit.
	ErrResponseTooLarge = errors.New("response body exceeds read limit")
)

// Config carries everything the client needs; nothing is read from the
// environment.
type Config struct {
	Token   string
	BaseURL string
	Timeout time.Duration
	Presets Presets
	Logger  logging.Logger
}

// Client talks to the Adjust report service.
type Client struct {
	http     *http.Client
	endpoint string
	maxBody  int64
	presets  Presets
	log      logging.Logger
}

// NewClient builds a client that authenticates every request with the
// configured bearer token.
func NewClient(cfg Config) (*Client, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, ErrMissingToken
	}

	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	hc := oauth2.NewClient(context.Background(), ts)
	hc.Timeout = cfg.Timeout

	presets := cfg.Presets
	if len(presets.order) == 0 {
		presets = DefaultPresets()
	}

	return &Client{
		http:     hc,
		endpoint: base + ReportPath,
		maxBody:  maxBodyBytes,
		presets:  presets,
		log:      logging.New(cfg.Logger.Logr()).WithName("adjust"),
	}, nil
}

// Presets returns the report types known to StandardReport.
func (c *Client) Presets() Presets { return c.presets }

// FetchReport performs one GET against the report endpoint. Any non-2xx
// response or transport failure is returned as *APIError.
func (c *Client) FetchReport(ctx context.Context, q ReportQuery) (Report, error) {
	params, err := q.Values()
	if err != nil {
		return Report{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return Report{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	c.log.Debug("requesting report", "endpoint", c.endpoint, "query", params.Encode())

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error(err, "report request failed", "elapsed", time.Since(start).String())
		return Report{}, newTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		c.log.Error(err, "reading report body failed", "status", resp.StatusCode)
		return Report{}, newTransportError(fmt.Errorf("read response body: %w", err))
	}
	if int64(len(body)) > c.maxBody {
		apiErr := newTooLargeError(c.maxBody)
		c.log.Error(apiErr, "report body rejected", "status", resp.StatusCode, "limit", c.maxBody)
		return Report{}, apiErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newStatusError(resp.StatusCode, body)
		c.log.Error(apiErr, "report request rejected", "status", resp.StatusCode, "elapsed", time.Since(start).String())
		return Report{}, apiErr
	}

	c.log.Debug("report received", "status", resp.StatusCode, "bytes", len(body), "elapsed", time.Since(start).String())
	return NewReport(body), nil
}

// StandardReport fetches one of the preset report types over dateRange,
// optionally filtered to appTokens.
func (c *Client) StandardReport(ctx context.Context, reportType, dateRange string, appTokens []string) (Report, error) {
	q, err := c.presets.Query(reportType, dateRange, appTokens)
	if err != nil {
		return Report{}, err
	}
	return c.FetchReport(ctx, q)
}
