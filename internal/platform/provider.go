package platform

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/mobile-locator/internal/model"
)

// Provider bundles the backends for one device.
type Provider struct {
	Platform      model.Platform
	Reader        Reader
	Screenshotter Screenshotter
	Inputter      Inputter
}

var (
	// ErrUnsupported is returned when no backend is registered under a name.
	ErrUnsupported = errors.New("backend not supported")
	// ErrUnavailable marks an invalid device state: empty tree source, zero
	// window size or a failed capture.
	ErrUnavailable = errors.New("device unavailable")
)

// Options configures a backend.
type Options struct {
	Platform model.Platform
	// Dir is the snapshot directory for file-backed backends.
	Dir string
	// URL, Session and Capabilities address a WebDriver server.
	URL          string
	Session      string
	Capabilities map[string]interface{}
	// Settle is how long input actions wait for the UI to settle.
	Settle time.Duration
	Logger *zap.Logger
}

// Factory builds a Provider. Backend packages register one via init().
// See internal/platform/fixture for the file-backed registration.
type Factory func(opts Options) (*Provider, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a backend available by name.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[strings.ToLower(name)] = f
}

// Backends lists registered backend names.
func Backends() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewProvider returns a Provider for the named backend.
func NewProvider(name string, opts Options) (*Provider, error) {
	mu.RLock()
	f, ok := factories[strings.ToLower(name)]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %s)", ErrUnsupported, name, strings.Join(Backends(), ", "))
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return f(opts)
}
