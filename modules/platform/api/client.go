package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/qiyaolin/labops/modules/platform/session"
)

// ErrNoToken means no API token is present; the call was never attempted.
var ErrNoToken = errors.New("not authenticated: no API token")

// StatusError is a non-2xx response. Body carries the raw response text
// when obtainable; callers translate it into user feedback.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("request failed: status %d", e.Code)
	}
	return fmt.Sprintf("request failed: status %d: %s", e.Code, e.Body)
}

// Client is the typed wrapper over the lab operations REST API. One method
// per (resource kind x verb); every method requires the session token and
// short-circuits without it. Failures are surfaced once - no retry, no
// backoff - the single decision point is the dispatcher.
type Client struct {
	http *resty.Client
	sess *session.Session
	log  *zap.Logger
}

// New creates an API client against baseURL (scheme://host[:port], no
// trailing /api).
func New(baseURL string, timeout time.Duration, sess *session.Session, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/") + "/api").
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http: httpClient,
		sess: sess,
		log:  log,
	}
}

// BaseURL returns the resolved API base, for diagnostics.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// authed builds a request carrying the bearer token, or fails fast when
// the session has none.
func (c *Client) authed(ctx context.Context) (*resty.Request, error) {
	if !c.sess.HasToken() {
		return nil, ErrNoToken
	}
	return c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Token "+c.sess.BearerToken()), nil
}

// check folds transport errors and non-2xx statuses into one error shape.
func (c *Client) check(resp *resty.Response, err error) error {
	if err != nil {
		c.log.Warn("api call failed", zap.Error(err))
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		serr := &StatusError{
			Code: resp.StatusCode(),
			Body: strings.TrimSpace(string(resp.Body())),
		}
		c.log.Warn("api call rejected",
			zap.Int("status", serr.Code),
			zap.String("path", resp.Request.URL),
		)
		return serr
	}
	return nil
}

// LoginResult is the response of the token endpoint.
type LoginResult struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// Login exchanges credentials for an API token. This is the one call that
// does not require an existing token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var out LoginResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&out).
		Post("/auth/login/")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}
