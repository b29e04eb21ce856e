// Package appium is a device backend that talks to an Appium (WebDriver)
// server over HTTP.
package appium

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/mobile-locator/internal/model"
	"github.com/mj1618/mobile-locator/internal/platform"
)

// Name is the backend name the client registers under.
const Name = "appium"

// DefaultURL is the local Appium server address.
const DefaultURL = "http://127.0.0.1:4723"

func init() {
	platform.Register(Name, func(opts platform.Options) (*platform.Provider, error) {
		c := New(opts)
		if c.sessionID == "" {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if err := c.CreateSession(ctx, opts.Capabilities); err != nil {
				return nil, err
			}
		}
		return &platform.Provider{Platform: c.platform, Reader: c, Screenshotter: c, Inputter: c}, nil
	})
}

// Client is a WebDriver session on one device.
type Client struct {
	http      *http.Client
	baseURL   string
	sessionID string
	platform  model.Platform
	settle    time.Duration
	log       *zap.Logger
}

// New creates a client. An empty opts.Session requires CreateSession before
// use.
func New(opts platform.Options) *Client {
	url := strings.TrimRight(opts.URL, "/")
	if url == "" {
		url = DefaultURL
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	p := opts.Platform
	if p == "" {
		p = model.Android
	}
	return &Client{
		http:      &http.Client{Timeout: 60 * time.Second},
		baseURL:   url,
		sessionID: opts.Session,
		platform:  p,
		settle:    opts.Settle,
		log:       log,
	}
}

// SessionID returns the current session ID.
func (c *Client) SessionID() string { return c.sessionID }

type response struct {
	SessionID string          `json:"sessionId"`
	Value     json.RawMessage `json:"value"`
}

// request makes an HTTP request to the server and returns the "value" field.
func (c *Client) request(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error) {
	start := time.Now()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("webdriver request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %s %s: %w", platform.ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	c.log.Debug("webdriver request",
		zap.String("method", method), zap.String("path", path),
		zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))

	var r response
	if err := json.Unmarshal(data, &r); err != nil {
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("server error %d: %s", resp.StatusCode, string(data))
		}
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if resp.StatusCode >= 400 {
		var e struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(r.Value, &e) == nil && e.Error != "" {
			return nil, fmt.Errorf("%s: %s", e.Error, e.Message)
		}
		return nil, fmt.Errorf("server error %d: %s", resp.StatusCode, string(data))
	}
	if r.SessionID != "" && c.sessionID == "" {
		c.sessionID = r.SessionID
	}
	return r.Value, nil
}

func (c *Client) sessionPath(path string) string {
	return fmt.Sprintf("/session/%s%s", c.sessionID, path)
}

// DefaultCapabilities returns the capabilities for a fresh session on p.
func DefaultCapabilities(p model.Platform) map[string]interface{} {
	if p == model.IOS {
		return map[string]interface{}{
			"platformName":          "iOS",
			"appium:automationName": "XCUITest",
		}
	}
	return map[string]interface{}{
		"platformName":                            "Android",
		"appium:automationName":                   "UiAutomator2",
		"appium:settings[ignoreUnimportantViews]": true,
	}
}

// CreateSession starts a session with the default capabilities for the
// client's platform merged with extra.
func (c *Client) CreateSession(ctx context.Context, extra map[string]interface{}) error {
	caps := DefaultCapabilities(c.platform)
	for k, v := range extra {
		caps[k] = v
	}
	value, err := c.request(ctx, http.MethodPost, "/session", map[string]interface{}{
		"capabilities": map[string]interface{}{"alwaysMatch": caps},
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if c.sessionID == "" {
		var v struct {
			SessionID string `json:"sessionId"`
		}
		if json.Unmarshal(value, &v) == nil {
			c.sessionID = v.SessionID
		}
	}
	if c.sessionID == "" {
		return fmt.Errorf("create session: no session ID in response")
	}
	c.log.Info("webdriver session created", zap.String("session", c.sessionID), zap.String("platform", string(c.platform)))
	return nil
}

// DeleteSession ends the current session.
func (c *Client) DeleteSession(ctx context.Context) error {
	if c.sessionID == "" {
		return nil
	}
	_, err := c.request(ctx, http.MethodDelete, c.sessionPath(""), nil)
	c.sessionID = ""
	return err
}
