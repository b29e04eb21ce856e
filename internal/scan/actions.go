package scan

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mj1618/mobile-locator/internal/analyzer"
	"github.com/mj1618/mobile-locator/internal/locator"
	"github.com/mj1618/mobile-locator/internal/model"
	"github.com/mj1618/mobile-locator/internal/platform"
)

// TapResult describes what a smart tap hit.
type TapResult struct {
	// Tapped is the device point that was tapped.
	Tapped platform.Point `yaml:"tapped" json:"tapped"`
	// Requested is the caller's point scaled to device space.
	Requested platform.Point    `yaml:"requested"         json:"requested"`
	Element   *analyzer.Element `yaml:"element,omitempty" json:"element,omitempty"`
}

// ScalePoint converts an image-space point to device space. A zero image
// axis means the point is already in device space.
func ScalePoint(x, y int, image, device model.Size) platform.Point {
	if image.Width <= 0 || image.Height <= 0 {
		return platform.Point{X: x, Y: y}
	}
	return platform.Point{
		X: int(float64(x) * float64(device.Width) / float64(image.Width)),
		Y: int(float64(y) * float64(device.Height) / float64(image.Height)),
	}
}

// SmartTap scales (x, y) from screenshot space, resolves the element under it
// in the last cached scan and taps its center. Without a cached scan or a hit
// it taps the scaled point.
func (s *Service) SmartTap(ctx context.Context, x, y int, image model.Size) (*TapResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.resolve(ctx, x, y, image)
	if err != nil {
		return nil, err
	}
	if err := s.provider.Inputter.Tap(ctx, res.Tapped.X, res.Tapped.Y); err != nil {
		return nil, fmt.Errorf("tap (%d,%d): %w", res.Tapped.X, res.Tapped.Y, err)
	}
	fields := []zap.Field{zap.Int("x", res.Tapped.X), zap.Int("y", res.Tapped.Y)}
	if res.Element != nil {
		fields = append(fields, zap.String("locator", res.Element.Locator))
	}
	s.log.Info("tap", fields...)
	return res, nil
}

// ElementAt resolves (x, y) like SmartTap without tapping. Tapped holds the
// point a tap would hit.
func (s *Service) ElementAt(ctx context.Context, x, y int, image model.Size) (*TapResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolve(ctx, x, y, image)
}

func (s *Service) resolve(ctx context.Context, x, y int, image model.Size) (*TapResult, error) {
	last, haveLast := s.cache.Last()
	var window model.Size
	if haveLast {
		window = last.Window
	} else {
		w, err := s.provider.Reader.WindowSize(ctx)
		if err != nil {
			return nil, fmt.Errorf("read window size: %w", err)
		}
		window = w
	}
	if !window.Valid() {
		return nil, fmt.Errorf("%w: window size %dx%d", platform.ErrUnavailable, window.Width, window.Height)
	}

	res := &TapResult{Requested: ScalePoint(x, y, image, window)}
	res.Tapped = res.Requested
	if !haveLast {
		return res, nil
	}

	el, err := analyzer.FindElementAt(last.Source, res.Requested.X, res.Requested.Y, analyzer.Options{
		Platform: s.provider.Platform,
		Window:   window,
		Logger:   s.log,
	})
	switch {
	case err != nil:
		s.log.Warn("cached tree unusable for tap resolution", zap.Error(err))
	case el != nil:
		cx, cy := el.Bounds.Center()
		res.Tapped = platform.Point{X: cx, Y: cy}
		res.Element = el
	}
	return res, nil
}

// ErrNoSnapshot is returned when verification has no tree to check against.
var ErrNoSnapshot = errors.New("no snapshot available")

// Verify counts the nodes locator selects in the last cached scan, falling
// back to a fresh tree source from the device.
func (s *Service) Verify(ctx context.Context, loc string) (locator.Verification, error) {
	if _, _, err := locator.ParseLocator(loc); err != nil {
		return locator.Verification{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var source string
	if last, ok := s.cache.Last(); ok {
		source = last.Source
	} else {
		src, err := s.provider.Reader.TreeSource(ctx)
		if err != nil {
			return locator.Verification{}, fmt.Errorf("%w: %w", ErrNoSnapshot, err)
		}
		source = src
	}
	tree, err := model.ParseTree(source)
	if err != nil {
		return locator.Verification{}, err
	}
	return locator.Verify(locator.NewOracle(tree, s.log), loc, s.provider.Platform)
}

// Scroll scrolls the screen "up" or "down".
func (s *Service) Scroll(ctx context.Context, direction string) error {
	dir, err := platform.ParseDirection(direction)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.provider.Inputter.Scroll(ctx, dir); err != nil {
		return fmt.Errorf("scroll %s: %w", dir, err)
	}
	s.log.Info("scroll", zap.String("direction", string(dir)))
	return nil
}

// Back presses the platform back action.
func (s *Service) Back(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.provider.Inputter.Back(ctx); err != nil {
		return fmt.Errorf("back: %w", err)
	}
	s.log.Info("back")
	return nil
}

// HideKeyboard dismisses the on-screen keyboard.
func (s *Service) HideKeyboard(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.provider.Inputter.HideKeyboard(ctx); err != nil {
		return fmt.Errorf("hide keyboard: %w", err)
	}
	s.log.Info("hide keyboard")
	return nil
}
