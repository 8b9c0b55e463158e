package speaker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Controller is the device boundary the synchronization engine depends on.
// Each call is an independent fallible round trip against one speaker; there
// is no ordering guarantee between calls on different Controller instances.
// This interface is implemented by *Client and can be faked for testing.
type Controller interface {
	GetVolume(ctx context.Context) (int, error)
	SetVolume(ctx context.Context, volume int) error
	GetMuted(ctx context.Context) (bool, error)
	SetMuted(ctx context.Context, muted bool) error
}

// Ensure Client implements Controller at compile time.
var _ Controller = (*Client)(nil)

// Client talks to a speaker's HTTP control API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "knurl/0.1"
	requestTimeout   = 5 * time.Second
)

type volumePayload struct {
	Volume int `json:"volume"`
}

type mutePayload struct {
	Muted bool `json:"muted"`
}

// NewClient builds a Client for the provided speaker address, typically an
// IP or host:port. A bare address defaults to the http scheme.
func NewClient(address string) (*Client, error) {
	base, err := parseBaseURL(address)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// GetVolume reads the speaker's current volume level (0-100).
func (c *Client) GetVolume(ctx context.Context) (int, error) {
	if c == nil {
		return 0, fmt.Errorf("client is nil")
	}
	var payload volumePayload
	if err := c.do(ctx, http.MethodGet, "/api/v1/volume", nil, &payload); err != nil {
		return 0, err
	}
	return payload.Volume, nil
}

// SetVolume writes a volume level (0-100) to the speaker.
func (c *Client) SetVolume(ctx context.Context, volume int) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodPut, "/api/v1/volume", volumePayload{Volume: volume}, nil)
}

// GetMuted reads the speaker's current mute state.
func (c *Client) GetMuted(ctx context.Context) (bool, error) {
	if c == nil {
		return false, fmt.Errorf("client is nil")
	}
	var payload mutePayload
	if err := c.do(ctx, http.MethodGet, "/api/v1/mute", nil, &payload); err != nil {
		return false, err
	}
	return payload.Muted, nil
}

// SetMuted writes a mute state to the speaker.
func (c *Client) SetMuted(ctx context.Context, muted bool) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodPut, "/api/v1/mute", mutePayload{Muted: muted}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("speaker %s returned status %d", rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(address string) (*url.URL, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, fmt.Errorf("speaker address is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse speaker address %q: %w", address, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
