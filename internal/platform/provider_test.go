package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/mobile-locator/internal/model"
)

func TestNewProvider_Unsupported(t *testing.T) {
	_, err := NewProvider("no-such-backend", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestRegister(t *testing.T) {
	Register("Test-Backend", func(opts Options) (*Provider, error) {
		return &Provider{Platform: opts.Platform}, nil
	})
	defer func() {
		mu.Lock()
		delete(factories, "test-backend")
		mu.Unlock()
	}()

	p, err := NewProvider("test-backend", Options{Platform: model.IOS})
	require.NoError(t, err)
	assert.Equal(t, model.IOS, p.Platform)
	assert.Contains(t, Backends(), "test-backend")
}
