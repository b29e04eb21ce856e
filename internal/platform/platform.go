package platform

import (
	"context"

	"github.com/mj1618/mobile-locator/internal/model"
)

// Reader fetches the raw UI tree and window geometry from the device.
type Reader interface {
	// TreeSource returns the serialized UI tree. An empty tree is reported
	// as ErrUnavailable.
	TreeSource(ctx context.Context) (string, error)

	// WindowSize returns the device window size. A zero axis is reported as
	// ErrUnavailable.
	WindowSize(ctx context.Context) (model.Size, error)
}

// Screenshotter captures screenshots.
type Screenshotter interface {
	// Capture returns the encoded screenshot bytes (PNG or JPEG).
	Capture(ctx context.Context) ([]byte, error)
}

// Inputter executes input primitives in device coordinate space.
type Inputter interface {
	Tap(ctx context.Context, x, y int) error
	Scroll(ctx context.Context, dir Direction) error
	Back(ctx context.Context) error
	HideKeyboard(ctx context.Context) error
}
