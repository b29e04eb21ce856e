package cache

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/mobile-locator/internal/model"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache(maxBytes int64) (*ScanCache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return New(Options{TTL: time.Minute, MaxBytes: maxBytes, Now: clock.Now}), clock
}

var window = model.Size{Width: 1080, Height: 1920}

func TestHash(t *testing.T) {
	assert.Equal(t, Hash("<a/>"), Hash("<a/>"))
	assert.NotEqual(t, Hash("<a/>"), Hash("<b/>"))
	assert.NotEmpty(t, Hash(""))
}

func TestSaveGet_TTL(t *testing.T) {
	c, clock := newTestCache(1 << 20)
	c.Save("h1", []byte("img"), "<a/>", window)

	clock.Advance(59 * time.Second)
	e, ok := c.Get("h1")
	require.True(t, ok)
	assert.Equal(t, "<a/>", e.Source)
	assert.Equal(t, window, e.Window)

	clock.Advance(time.Second)
	_, ok = c.Get("h1")
	assert.False(t, ok, "entry must expire at exactly T+TTL")
	assert.Zero(t, c.Stats().Entries)
	assert.Zero(t, c.Stats().Bytes)
}

func TestGet_Miss(t *testing.T) {
	c, _ := newTestCache(1 << 20)
	_, ok := c.Get("missing")
	assert.False(t, ok)
	_, ok = c.Last()
	assert.False(t, ok)
}

func TestEviction_OldestFirst(t *testing.T) {
	c, _ := newTestCache(100)
	c.Save("a", make([]byte, 30), strings.Repeat("x", 10), window)
	c.Save("b", make([]byte, 30), strings.Repeat("x", 10), window)
	assert.Equal(t, int64(80), c.Stats().Bytes)

	c.Save("c", make([]byte, 30), strings.Repeat("x", 10), window)
	assert.Equal(t, []string{"b", "c"}, c.Keys())
	assert.Equal(t, int64(80), c.Stats().Bytes)

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestEviction_SizeMatchesResidentEntries(t *testing.T) {
	c, _ := newTestCache(250)
	sizes := []int{40, 90, 10, 120, 60, 5, 200, 30}
	for i, n := range sizes {
		c.Save(string(rune('a'+i)), make([]byte, n), "", window)

		var sum int64
		for _, k := range c.Keys() {
			e, ok := c.Get(k)
			require.True(t, ok)
			sum += e.Size()
		}
		st := c.Stats()
		assert.Equal(t, sum, st.Bytes)
		assert.LessOrEqual(t, st.Bytes, st.MaxBytes)
	}
}

func TestSave_ReplacesExistingHash(t *testing.T) {
	c, _ := newTestCache(1 << 20)
	c.Save("a", []byte("1234"), "", window)
	c.Save("b", []byte("12"), "", window)
	c.Save("a", []byte("123456"), "", window)

	assert.Equal(t, []string{"b", "a"}, c.Keys())
	assert.Equal(t, int64(8), c.Stats().Bytes)
	e, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, []byte("123456"), e.Image)
}

func TestSave_OversizedOnlyUpdatesLast(t *testing.T) {
	c, _ := newTestCache(10)
	c.Save("small", []byte("1"), "", window)
	c.Save("huge", make([]byte, 11), "", window)

	_, ok := c.Get("huge")
	assert.False(t, ok)
	_, ok = c.Get("small")
	assert.True(t, ok, "oversized entry must not evict others")

	last, ok := c.Last()
	require.True(t, ok)
	assert.Equal(t, "huge", last.Hash)
}

func TestLast(t *testing.T) {
	c, clock := newTestCache(1 << 20)
	c.Save("h1", nil, "<a/>", window)
	c.Save("", nil, "<b/>", window)

	last, ok := c.Last()
	require.True(t, ok)
	assert.Equal(t, "<b/>", last.Source)
	assert.Equal(t, 1, c.Stats().Entries, "empty hash only updates the last scan")

	clock.Advance(time.Minute)
	_, ok = c.Last()
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	c, _ := newTestCache(1 << 20)
	c.Save("h1", []byte("img"), "<a/>", window)
	c.Clear()

	_, ok := c.Get("h1")
	assert.False(t, ok)
	_, ok = c.Last()
	assert.False(t, ok)
	assert.Equal(t, Stats{MaxBytes: 1 << 20}, c.Stats())
}

func TestDefaults(t *testing.T) {
	c := New(Options{})
	assert.Equal(t, DefaultTTL, c.ttl)
	assert.Equal(t, int64(DefaultMaxBytes), c.Stats().MaxBytes)
}

func TestConcurrentAccess(t *testing.T) {
	c := New(Options{MaxBytes: 1000})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				h := Hash(strings.Repeat("x", i*100+j))
				c.Save(h, make([]byte, 50), "", window)
				c.Get(h)
				c.Last()
			}
		}(i)
	}
	wg.Wait()
	st := c.Stats()
	assert.LessOrEqual(t, st.Bytes, st.MaxBytes)
	assert.Equal(t, int64(st.Entries*50), st.Bytes)
}
