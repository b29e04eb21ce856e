package fixture

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/mobile-locator/internal/model"
	"github.com/mj1618/mobile-locator/internal/platform"
)

func writeFixture(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestDevice_Reads(t *testing.T) {
	dir := writeFixture(t, map[string]string{
		SourceFile:       "<hierarchy/>",
		WindowFile:       "width: 1080\nheight: 1920\n",
		"screenshot.jpg": "jpegbytes",
	})
	p, err := platform.NewProvider(Name, platform.Options{Platform: model.Android, Dir: dir})
	require.NoError(t, err)
	ctx := context.Background()

	src, err := p.Reader.TreeSource(ctx)
	require.NoError(t, err)
	assert.Equal(t, "<hierarchy/>", src)

	size, err := p.Reader.WindowSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Size{Width: 1080, Height: 1920}, size)

	img, err := p.Screenshotter.Capture(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpegbytes"), img)
}

func TestDevice_Unavailable(t *testing.T) {
	dir := writeFixture(t, map[string]string{
		SourceFile: "   ",
		WindowFile: "width: 0\nheight: 1920\n",
	})
	d, err := New(dir, nil)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = d.TreeSource(ctx)
	assert.True(t, errors.Is(err, platform.ErrUnavailable), "empty source: %v", err)
	_, err = d.WindowSize(ctx)
	assert.True(t, errors.Is(err, platform.ErrUnavailable), "zero window: %v", err)
	_, err = d.Capture(ctx)
	assert.True(t, errors.Is(err, platform.ErrUnavailable), "missing screenshot: %v", err)
}

func TestDevice_RecordsActions(t *testing.T) {
	d, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, d.Tap(ctx, 10, 20))
	require.NoError(t, d.Scroll(ctx, platform.ScrollDown))
	require.NoError(t, d.Back(ctx))
	require.NoError(t, d.HideKeyboard(ctx))

	assert.Equal(t, []platform.Action{
		{Kind: "tap", X: 10, Y: 20},
		{Kind: "scroll", Direction: platform.ScrollDown},
		{Kind: "back"},
		{Kind: "hide_keyboard"},
	}, d.Actions())
}

func TestNew_Errors(t *testing.T) {
	_, err := New("", nil)
	assert.Error(t, err)
	_, err = New(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}

func TestDevice_CanceledContext(t *testing.T) {
	d, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, d.Tap(ctx, 1, 1), context.Canceled)
	assert.Empty(t, d.Actions())
}
