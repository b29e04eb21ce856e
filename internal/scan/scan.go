// Package scan drives one device: it captures snapshots through the cache,
// runs the analyzer over them and resolves taps against the last scan.
package scan

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mj1618/mobile-locator/internal/analyzer"
	"github.com/mj1618/mobile-locator/internal/cache"
	"github.com/mj1618/mobile-locator/internal/imaging"
	"github.com/mj1618/mobile-locator/internal/model"
	"github.com/mj1618/mobile-locator/internal/platform"
)

// Options configures a Service.
type Options struct {
	// Optimize re-encodes captured screenshots as JPEG before caching.
	Optimize   bool
	Quality    int
	Thresholds *model.Thresholds
}

// Service serializes access to one device provider and shares one scan
// cache across requests.
type Service struct {
	provider *platform.Provider
	cache    *cache.ScanCache
	opts     Options
	log      *zap.Logger

	mu sync.Mutex
}

// New creates a Service.
func New(provider *platform.Provider, c *cache.ScanCache, opts Options, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{provider: provider, cache: c, opts: opts, log: log}
}

// Cache returns the scan cache the service writes to.
func (s *Service) Cache() *cache.ScanCache { return s.cache }

// Platform returns the platform of the device.
func (s *Service) Platform() model.Platform { return s.provider.Platform }

// Request holds the per-scan parameters.
type Request struct {
	Verify bool
	Prefix string
}

// Result is one completed scan.
type Result struct {
	analyzer.Result `yaml:",inline"`

	Hash   string     `yaml:"hash"   json:"hash"`
	Cached bool       `yaml:"cached" json:"cached"`
	Window model.Size `yaml:"window" json:"window"`
	Image  []byte     `yaml:"-"      json:"-"`
	Source string     `yaml:"-"      json:"-"`
}

// Scan reads the tree source, reuses the cached screenshot for an unchanged
// tree or captures a fresh one, and analyzes the tree.
func (s *Service) Scan(ctx context.Context, req Request) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	source, err := s.provider.Reader.TreeSource(ctx)
	if err != nil {
		return nil, fmt.Errorf("read tree source: %w", err)
	}
	if source == "" {
		return nil, fmt.Errorf("read tree source: %w: empty tree", platform.ErrUnavailable)
	}
	hash := cache.Hash(source)

	res := &Result{Hash: hash, Source: source}
	if e, ok := s.cache.Get(hash); ok {
		s.log.Debug("scan cache hit", zap.String("hash", hash))
		res.Cached = true
		res.Image = e.Image
		res.Window = e.Window
		// Refresh only the last-scan slot; the keyed entry keeps its age.
		s.cache.Save("", e.Image, source, e.Window)
	} else {
		s.log.Debug("scan cache miss", zap.String("hash", hash))
		img, window, err := s.capture(ctx)
		if err != nil {
			return nil, err
		}
		res.Image = s.optimize(img)
		res.Window = window
		s.cache.Save(hash, res.Image, source, window)
	}

	analysis, err := analyzer.Analyze(source, analyzer.Options{
		Platform:   s.provider.Platform,
		Verify:     req.Verify,
		Prefix:     req.Prefix,
		Window:     res.Window,
		Thresholds: s.opts.Thresholds,
		Logger:     s.log,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	res.Result = *analysis
	s.log.Info("scan complete",
		zap.String("page", analysis.PageName),
		zap.Int("elements", len(analysis.Elements)),
		zap.Bool("cached", res.Cached),
	)
	return res, nil
}

// capture fetches the screenshot and window size concurrently.
func (s *Service) capture(ctx context.Context) ([]byte, model.Size, error) {
	var (
		img    []byte
		window model.Size
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		img, err = s.provider.Screenshotter.Capture(gctx)
		if err != nil {
			return fmt.Errorf("capture screenshot: %w", err)
		}
		if len(img) == 0 {
			return fmt.Errorf("capture screenshot: %w: no image", platform.ErrUnavailable)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		window, err = s.provider.Reader.WindowSize(gctx)
		if err != nil {
			return fmt.Errorf("read window size: %w", err)
		}
		if !window.Valid() {
			return fmt.Errorf("read window size: %w: %dx%d", platform.ErrUnavailable, window.Width, window.Height)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, model.Size{}, err
	}
	return img, window, nil
}

func (s *Service) optimize(img []byte) []byte {
	if !s.opts.Optimize {
		return img
	}
	out, err := imaging.Optimize(img, s.opts.Quality)
	if err != nil {
		s.log.Warn("image optimization failed, keeping original", zap.Error(err))
		return img
	}
	s.log.Debug("image optimized", zap.Int("before", len(img)), zap.Int("after", len(out)))
	return out
}
