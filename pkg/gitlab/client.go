package gitlab

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ethpandaops/glprojects/pkg/config"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// API prefixes.
const (
	PrefixV4 = "/api/v4"
	PrefixV3 = "/api/v3"
)

const requestIDHeader = "X-Request-Id"

// Transport performs the HTTP calls a request descriptor describes. Paths are
// relative to the API prefix and already percent-encoded.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values) (*Response, error)
	Post(ctx context.Context, path string, body url.Values) (*Response, error)
	Put(ctx context.Context, path string, body url.Values) (*Response, error)
	Delete(ctx context.Context, path string, query url.Values) (*Response, error)
	Upload(ctx context.Context, path string, body url.Values, files map[string]string) (*Response, error)
}

// Client is a GitLab API transport with a lifecycle.
type Client interface {
	Transport

	Start(ctx context.Context) error
	Stop() error

	// APIPrefix returns the API prefix in use, e.g. /api/v4.
	APIPrefix() string
}

// Metrics receives API call observations.
type Metrics interface {
	RecordAPIRequest(method, status string, duration float64)
	RecordAPIError(method, kind string)
	RecordThrottled()
}

// client implements Client.
type client struct {
	log     logrus.FieldLogger
	cfg     config.GitLabConfig
	rc      *resty.Client
	limiter *rate.Limiter
	metrics Metrics
	mu      sync.RWMutex
	prefix  string
}

// Ensure client implements Client.
var _ Client = (*client)(nil)

// NewClient creates a new GitLab client. m may be nil.
func NewClient(log logrus.FieldLogger, cfg config.GitLabConfig, m Metrics) Client {
	if m == nil {
		m = noopMetrics{}
	}

	c := &client{
		log:     log.WithField("component", "gitlab"),
		cfg:     cfg,
		metrics: m,
		prefix:  PrefixV4,
	}

	if cfg.APIVersion == config.APIVersionV3 {
		c.prefix = PrefixV3
	}

	if cfg.RateLimit.RequestsPerSecond > 0 {
		burst := cfg.RateLimit.Burst
		if burst <= 0 {
			burst = 1
		}

		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), burst)
	}

	c.rc = resty.NewWithClient(c.httpClient()).
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json").
		SetLogger(c.log)

	if cfg.Auth != config.AuthOAuth2 {
		c.rc.SetHeader("PRIVATE-TOKEN", cfg.Token)
	}

	return c
}

// httpClient builds the underlying HTTP client. OAuth2 tokens travel as a
// bearer header set by the oauth2 transport.
func (c *client) httpClient() *http.Client {
	base := http.DefaultTransport.(*http.Transport).Clone()

	if c.cfg.InsecureSkipVerify {
		//nolint:gosec // Explicitly requested for self-signed GitLab instances.
		base.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	var rt http.RoundTripper = base

	if c.cfg.Auth == config.AuthOAuth2 {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.cfg.Token, TokenType: "Bearer"}),
			Base:   base,
		}
	}

	return &http.Client{Transport: rt}
}

// Start verifies the credentials and, when the API version is "auto", picks
// v4 or v3 by probing HEAD {prefix}/user.
func (c *client) Start(ctx context.Context) error {
	c.log.WithField("url", c.cfg.URL).Info("Initializing GitLab client")

	candidates := []string{PrefixV4, PrefixV3}

	switch c.cfg.APIVersion {
	case config.APIVersionV4:
		candidates = []string{PrefixV4}
	case config.APIVersionV3:
		candidates = []string{PrefixV3}
	}

	for _, prefix := range candidates {
		status, err := c.probe(ctx, prefix)
		if err != nil {
			return err
		}

		switch status {
		case http.StatusUnauthorized:
			return ErrInvalidToken
		case http.StatusOK:
			c.mu.Lock()
			c.prefix = prefix
			c.mu.Unlock()

			c.log.WithField("api_prefix", prefix).Info("GitLab client initialized")

			return nil
		}

		c.log.WithFields(logrus.Fields{
			"api_prefix": prefix,
			"status":     status,
		}).Debug("API version not available")
	}

	return ErrInvalidEndpoint
}

func (c *client) probe(ctx context.Context, prefix string) (int, error) {
	path := prefix + "/user"

	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, uuid.NewString()).
		Head(path)
	if err != nil {
		return 0, &TransportError{Method: http.MethodHead, Path: path, Err: err}
	}

	return resp.StatusCode(), nil
}

// Stop shuts down the GitLab client.
func (c *client) Stop() error {
	c.log.Info("Stopping GitLab client")

	c.rc.GetClient().CloseIdleConnections()

	return nil
}

// APIPrefix returns the API prefix in use.
func (c *client) APIPrefix() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.prefix
}

// Get performs a GET request.
func (c *client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.execute(ctx, http.MethodGet, path, query, nil, nil)
}

// Post performs a POST request with a form-encoded body.
func (c *client) Post(ctx context.Context, path string, body url.Values) (*Response, error) {
	return c.execute(ctx, http.MethodPost, path, nil, body, nil)
}

// Put performs a PUT request with a form-encoded body.
func (c *client) Put(ctx context.Context, path string, body url.Values) (*Response, error) {
	return c.execute(ctx, http.MethodPut, path, nil, body, nil)
}

// Delete performs a DELETE request.
func (c *client) Delete(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.execute(ctx, http.MethodDelete, path, query, nil, nil)
}

// Upload performs a multipart POST request.
func (c *client) Upload(ctx context.Context, path string, body url.Values, files map[string]string) (*Response, error) {
	return c.execute(ctx, http.MethodPost, path, nil, body, files)
}

func (c *client) execute(
	ctx context.Context,
	method, path string,
	query, body url.Values,
	files map[string]string,
) (*Response, error) {
	fullPath := c.APIPrefix() + "/" + strings.TrimLeft(path, "/")
	requestID := uuid.NewString()

	log := c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       fullPath,
		"request_id": requestID,
	})

	if err := c.wait(ctx); err != nil {
		c.metrics.RecordAPIError(method, "transport")

		return nil, &TransportError{Method: method, Path: fullPath, Err: err}
	}

	req := c.rc.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, requestID)

	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}

	if len(body) > 0 {
		req.SetFormDataFromValues(body)
	}

	if len(files) > 0 {
		req.SetFiles(files)
	}

	log.Debug("Sending GitLab API request")

	start := time.Now()

	resp, err := req.Execute(method, fullPath)
	if err != nil {
		c.metrics.RecordAPIError(method, "transport")
		log.WithError(err).Debug("GitLab API request failed")

		return nil, &TransportError{Method: method, Path: fullPath, Err: err}
	}

	status := resp.StatusCode()
	c.metrics.RecordAPIRequest(method, strconv.Itoa(status), time.Since(start).Seconds())

	log = log.WithField("status", status)

	if status < 200 || status > 299 {
		c.metrics.RecordAPIError(method, "remote")
		log.Debug("GitLab API returned an error")

		return nil, newRemoteError(method, fullPath, status, resp.Body())
	}

	log.Debug("GitLab API request completed")

	return newResponse(status, resp.Header(), resp.Body(), requestID), nil
}

// wait blocks until the rate limiter admits a request.
func (c *client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}

	if c.limiter.Allow() {
		return nil
	}

	c.metrics.RecordThrottled()

	if err := c.limiter.Wait(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		return fmt.Errorf("rate limiter: %w", err)
	}

	return nil
}

type noopMetrics struct{}

func (noopMetrics) RecordAPIRequest(string, string, float64) {}
func (noopMetrics) RecordAPIError(string, string)            {}
func (noopMetrics) RecordThrottled()                         {}
