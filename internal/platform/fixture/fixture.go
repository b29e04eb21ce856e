// Package fixture provides a file-backed device backend. A fixture directory
// holds source.xml (the UI tree), screenshot.png (or .jpg) and window.yaml
// ({width, height}). Input actions are recorded instead of executed.
package fixture

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/mobile-locator/internal/model"
	"github.com/mj1618/mobile-locator/internal/platform"
)

// Name is the backend name the fixture registers under.
const Name = "fixture"

const (
	SourceFile = "source.xml"
	WindowFile = "window.yaml"
)

var screenshotFiles = []string{"screenshot.png", "screenshot.jpg", "screenshot.jpeg"}

func init() {
	platform.Register(Name, func(opts platform.Options) (*platform.Provider, error) {
		d, err := New(opts.Dir, opts.Logger)
		if err != nil {
			return nil, err
		}
		return d.Provider(opts.Platform), nil
	})
}

// Device serves one fixture directory.
type Device struct {
	dir string
	log *zap.Logger

	mu      sync.Mutex
	actions []platform.Action
}

// New opens a fixture directory.
func New(dir string, log *zap.Logger) (*Device, error) {
	if dir == "" {
		return nil, fmt.Errorf("fixture backend: no directory configured")
	}
	st, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("fixture backend: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("fixture backend: %s is not a directory", dir)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Device{dir: dir, log: log}, nil
}

// Provider bundles d as every backend role.
func (d *Device) Provider(p model.Platform) *platform.Provider {
	return &platform.Provider{Platform: p, Reader: d, Screenshotter: d, Inputter: d}
}

func (d *Device) read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s missing", platform.ErrUnavailable, name)
	}
	return data, err
}

// TreeSource returns the contents of source.xml.
func (d *Device) TreeSource(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := d.read(SourceFile)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("%w: empty tree source", platform.ErrUnavailable)
	}
	return string(data), nil
}

// WindowSize returns the size recorded in window.yaml.
func (d *Device) WindowSize(ctx context.Context) (model.Size, error) {
	if err := ctx.Err(); err != nil {
		return model.Size{}, err
	}
	data, err := d.read(WindowFile)
	if err != nil {
		return model.Size{}, err
	}
	var size model.Size
	if err := yaml.Unmarshal(data, &size); err != nil {
		return model.Size{}, fmt.Errorf("parse %s: %w", WindowFile, err)
	}
	if !size.Valid() {
		return model.Size{}, fmt.Errorf("%w: window size %dx%d", platform.ErrUnavailable, size.Width, size.Height)
	}
	return size, nil
}

// Capture returns the first screenshot file present.
func (d *Device) Capture(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, name := range screenshotFiles {
		data, err := d.read(name)
		if errors.Is(err, platform.ErrUnavailable) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("%w: empty screenshot", platform.ErrUnavailable)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: no screenshot in %s", platform.ErrUnavailable, d.dir)
}

func (d *Device) record(a platform.Action) {
	d.mu.Lock()
	d.actions = append(d.actions, a)
	d.mu.Unlock()
	d.log.Info("fixture input",
		zap.String("kind", a.Kind), zap.Int("x", a.X), zap.Int("y", a.Y), zap.String("direction", string(a.Direction)))
}

func (d *Device) Tap(ctx context.Context, x, y int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.record(platform.Action{Kind: "tap", X: x, Y: y})
	return nil
}

func (d *Device) Scroll(ctx context.Context, dir platform.Direction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.record(platform.Action{Kind: "scroll", Direction: dir})
	return nil
}

func (d *Device) Back(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.record(platform.Action{Kind: "back"})
	return nil
}

func (d *Device) HideKeyboard(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.record(platform.Action{Kind: "hide_keyboard"})
	return nil
}

// Actions returns the recorded input actions in order.
func (d *Device) Actions() []platform.Action {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]platform.Action(nil), d.actions...)
}
