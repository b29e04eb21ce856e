package appium

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/mobile-locator/internal/model"
	"github.com/mj1618/mobile-locator/internal/platform"
)

// TreeSource returns the page source XML.
func (c *Client) TreeSource(ctx context.Context) (string, error) {
	value, err := c.request(ctx, http.MethodGet, c.sessionPath("/source"), nil)
	if err != nil {
		return "", fmt.Errorf("get source: %w", err)
	}
	var source string
	if err := json.Unmarshal(value, &source); err != nil {
		return "", fmt.Errorf("parse source: %w", err)
	}
	if source == "" {
		return "", fmt.Errorf("%w: empty page source", platform.ErrUnavailable)
	}
	return source, nil
}

// WindowSize returns the window rect size.
func (c *Client) WindowSize(ctx context.Context) (model.Size, error) {
	value, err := c.request(ctx, http.MethodGet, c.sessionPath("/window/rect"), nil)
	if err != nil {
		return model.Size{}, fmt.Errorf("get window rect: %w", err)
	}
	var size model.Size
	if err := json.Unmarshal(value, &size); err != nil {
		return model.Size{}, fmt.Errorf("parse window rect: %w", err)
	}
	if !size.Valid() {
		return model.Size{}, fmt.Errorf("%w: window size %dx%d", platform.ErrUnavailable, size.Width, size.Height)
	}
	return size, nil
}

// Capture returns the decoded PNG screenshot.
func (c *Client) Capture(ctx context.Context) ([]byte, error) {
	value, err := c.request(ctx, http.MethodGet, c.sessionPath("/screenshot"), nil)
	if err != nil {
		return nil, fmt.Errorf("get screenshot: %w", err)
	}
	var encoded string
	if err := json.Unmarshal(value, &encoded); err != nil {
		return nil, fmt.Errorf("parse screenshot: %w", err)
	}
	img, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	if len(img) == 0 {
		return nil, fmt.Errorf("%w: empty screenshot", platform.ErrUnavailable)
	}
	return img, nil
}

// pointerAction is one W3C pointer input step.
type pointerAction struct {
	Type     string `json:"type"`
	Duration int    `json:"duration,omitempty"`
	X        int    `json:"x,omitempty"`
	Y        int    `json:"y,omitempty"`
	Button   *int   `json:"button,omitempty"`
}

func fingerActions(steps ...pointerAction) map[string]interface{} {
	return map[string]interface{}{
		"actions": []interface{}{map[string]interface{}{
			"type":       "pointer",
			"id":         "finger",
			"parameters": map[string]string{"pointerType": "touch"},
			"actions":    steps,
		}},
	}
}

var primary = 0

func move(x, y, ms int) pointerAction {
	return pointerAction{Type: "pointerMove", X: x, Y: y, Duration: ms}
}

func (c *Client) execute(ctx context.Context, script string, args map[string]interface{}) error {
	_, err := c.request(ctx, http.MethodPost, c.sessionPath("/execute/sync"), map[string]interface{}{
		"script": script,
		"args":   []interface{}{args},
	})
	return err
}

func (c *Client) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Tap taps a device point.
func (c *Client) Tap(ctx context.Context, x, y int) error {
	var err error
	if c.platform == model.IOS {
		err = c.execute(ctx, "mobile: tap", map[string]interface{}{"x": x, "y": y})
	} else {
		_, err = c.request(ctx, http.MethodPost, c.sessionPath("/actions"), fingerActions(
			move(x, y, 0),
			pointerAction{Type: "pointerDown", Button: &primary},
			pointerAction{Type: "pause", Duration: 50},
			pointerAction{Type: "pointerUp", Button: &primary},
		))
	}
	if err != nil {
		return fmt.Errorf("tap: %w", err)
	}
	return c.wait(ctx, c.settle)
}

// Scroll scrolls the content in dir. Android swipes through the middle 40%
// of the screen.
func (c *Client) Scroll(ctx context.Context, dir platform.Direction) error {
	if c.platform == model.IOS {
		if err := c.execute(ctx, "mobile: scroll", map[string]interface{}{"direction": string(dir)}); err != nil {
			return fmt.Errorf("scroll: %w", err)
		}
		return c.wait(ctx, c.settle)
	}

	win, err := c.WindowSize(ctx)
	if err != nil {
		return err
	}
	cx := win.Width / 2
	from, to := win.Height*7/10, win.Height*3/10
	if dir == platform.ScrollUp {
		from, to = to, from
	}
	_, err = c.request(ctx, http.MethodPost, c.sessionPath("/actions"), fingerActions(
		move(cx, from, 0),
		pointerAction{Type: "pointerDown", Button: &primary},
		pointerAction{Type: "pause", Duration: 50},
		move(cx, to, 300),
		pointerAction{Type: "pointerUp", Button: &primary},
	))
	if err != nil {
		return fmt.Errorf("scroll: %w", err)
	}
	return c.wait(ctx, c.settle)
}

// Back presses the system back action.
func (c *Client) Back(ctx context.Context) error {
	if _, err := c.request(ctx, http.MethodPost, c.sessionPath("/back"), map[string]interface{}{}); err != nil {
		return fmt.Errorf("back: %w", err)
	}
	return c.wait(ctx, c.settle)
}

// HideKeyboard dismisses the keyboard. On iOS a failed dismissal retries by
// tapping outside; on Android a failure usually means no keyboard was shown
// and is ignored.
func (c *Client) HideKeyboard(ctx context.Context) error {
	_, err := c.request(ctx, http.MethodPost, c.sessionPath("/appium/device/hide_keyboard"), map[string]interface{}{})
	if err != nil {
		if c.platform == model.IOS {
			if err := c.execute(ctx, "mobile: hideKeyboard", map[string]interface{}{"strategy": "tapOutside"}); err != nil {
				return fmt.Errorf("hide keyboard: %w", err)
			}
		} else {
			c.log.Debug("hide keyboard ignored", zap.Error(err))
		}
	}
	return c.wait(ctx, c.settle)
}
