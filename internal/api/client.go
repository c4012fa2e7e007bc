// Package api is the HTTP client for the Waveform service endpoints the
// feed consumes: the paginated user-activity listing, template lookup,
// and the admin password reset. All payloads are JSON envelopes with a
// success flag; normalization into feed.Item happens here, at the fetch
// boundary, so nothing downstream sees source field aliasing.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wavefeed/wavefeed/internal/feed"
	"github.com/wavefeed/wavefeed/internal/uilog"
)

// ErrSource marks responses that arrived fine over HTTP but carry a
// failure: success=false, a non-2xx status, or a malformed body.
var ErrSource = errors.New("source error")

const defaultTimeout = 15 * time.Second

// Template is a song template as returned by the template lookup.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Style       string `json:"style,omitempty"`
}

// Client talks to one Waveform server.
type Client struct {
	base string
	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type activitiesEnvelope struct {
	Success    bool              `json:"success"`
	Activities []activityPayload `json:"activities"`
	Error      string            `json:"error,omitempty"`
}

type templateEnvelope struct {
	Success  bool     `json:"success"`
	Template Template `json:"template"`
	Error    string   `json:"error,omitempty"`
}

type statusEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ListActivities fetches one page of activity records.
func (c *Client) ListActivities(ctx context.Context, page, limit int) ([]feed.Item, error) {
	defer uilog.Log.Timed("api.ListActivities")()

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var env activitiesEnvelope
	if err := c.getJSON(ctx, "/api/user-activity?"+q.Encode(), &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, sourceErr(env.Error)
	}

	items := make([]feed.Item, 0, len(env.Activities))
	for _, p := range env.Activities {
		items = append(items, normalizeActivity(p))
	}
	uilog.Log.Debug("activities fetched", "page", page, "count", len(items))
	return items, nil
}

// Template fetches one template by ID.
func (c *Client) Template(ctx context.Context, id string) (Template, error) {
	var env templateEnvelope
	if err := c.getJSON(ctx, "/api/templates/"+url.PathEscape(id), &env); err != nil {
		return Template{}, err
	}
	if !env.Success {
		return Template{}, sourceErr(env.Error)
	}
	return env.Template, nil
}

// ResetPassword asks the server to issue a password reset for a user.
// Admin surface; the TUI exposes it from the card admin menu.
func (c *Client) ResetPassword(ctx context.Context, userID string) error {
	body, err := json.Marshal(map[string]string{"user_id": userID})
	if err != nil {
		return fmt.Errorf("encode reset request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/admin/reset-password", strings.NewReader(string(body)))
	if err != nil {
		return fmt.Errorf("build reset request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var env statusEnvelope
	if err := c.do(req, &env); err != nil {
		return err
	}
	if !env.Success {
		return sourceErr(env.Error)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s returned %s", ErrSource, req.URL.Path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrSource, req.URL.Path, err)
	}
	return nil
}

func sourceErr(msg string) error {
	if msg == "" {
		msg = "request was not successful"
	}
	return fmt.Errorf("%w: %s", ErrSource, msg)
}
