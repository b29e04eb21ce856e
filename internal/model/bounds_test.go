package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndroidBounds(t *testing.T) {
	tests := []struct {
		in     string
		want   Bounds
		wantOK bool
	}{
		{"[0,0][100,50]", Bounds{0, 0, 100, 50, 5000}, true},
		{"[10,20][30,60]", Bounds{10, 20, 20, 40, 800}, true},
		{"[10,20][10,60]", Bounds{}, false},
		{"[10,20][30,20]", Bounds{}, false},
		{"[30,20][10,60]", Bounds{}, false},
		{"", Bounds{}, false},
		{"garbage", Bounds{}, false},
		{"[1,2,3,4]", Bounds{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseAndroidBounds(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		if tt.wantOK {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestParseIOSBounds(t *testing.T) {
	tree, err := ParseTree(`<r>
		<a x="10" y="10" width="40" height="20"/>
		<b width="5" height="6"/>
		<c x="1" y="1" width="0" height="20"/>
		<d x="1.5" y="1" width="10" height="20"/>
		<e x="1" y="1" height="20"/>
	</r>`)
	require.NoError(t, err)
	nodes := tree.Nodes()

	b, ok := ParseIOSBounds(nodes[1])
	require.True(t, ok)
	assert.Equal(t, Bounds{10, 10, 40, 20, 800}, b)

	b, ok = ParseIOSBounds(nodes[2])
	require.True(t, ok)
	assert.Equal(t, 0, b.X)
	assert.Equal(t, 0, b.Y)
	assert.Equal(t, 30, b.Area)

	for _, n := range nodes[3:] {
		_, ok := ParseIOSBounds(n)
		assert.False(t, ok, Tag(n))
	}
}

func TestBoundsContains_InclusiveEdges(t *testing.T) {
	b := Bounds{X: 5, Y: 5, Width: 45, Height: 45}
	for _, p := range [][2]int{{5, 5}, {50, 50}, {5, 50}, {20, 20}} {
		assert.True(t, b.Contains(p[0], p[1]), "%v inside", p)
	}
	for _, p := range [][2]int{{4, 5}, {51, 50}, {20, 51}} {
		assert.False(t, b.Contains(p[0], p[1]), "%v outside", p)
	}
}
