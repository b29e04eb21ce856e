package model

import (
	"regexp"
	"strconv"
)

// Bounds is an element rectangle in device space.
type Bounds struct {
	X      int `yaml:"x"      json:"x"`
	Y      int `yaml:"y"      json:"y"`
	Width  int `yaml:"w"      json:"w"`
	Height int `yaml:"h"      json:"h"`
	Area   int `yaml:"area"   json:"area"`
}

// Size is a window size in device space. A zero axis marks an invalid
// device state.
type Size struct {
	Width  int `yaml:"width"  json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Area returns Width*Height.
func (s Size) Area() int { return s.Width * s.Height }

// Valid reports whether both axes are positive.
func (s Size) Valid() bool { return s.Width > 0 && s.Height > 0 }

// Contains reports whether the point lies inside b, edges included.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x <= b.X+b.Width && y >= b.Y && y <= b.Y+b.Height
}

// Center returns the midpoint of b.
func (b Bounds) Center() (int, int) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

func newBounds(x, y, w, h int) (Bounds, bool) {
	if w <= 0 || h <= 0 {
		return Bounds{}, false
	}
	return Bounds{X: x, Y: y, Width: w, Height: h, Area: w * h}, true
}

// androidBoundsRe matches "[x1,y1][x2,y2]".
var androidBoundsRe = regexp.MustCompile(`\[(\d+),(\d+)\]\[(\d+),(\d+)\]`)

// ParseAndroidBounds parses an Android bounds attribute. It returns false for
// malformed text or a non-positive width or height.
func ParseAndroidBounds(s string) (Bounds, bool) {
	m := androidBoundsRe.FindStringSubmatch(s)
	if m == nil {
		return Bounds{}, false
	}
	var v [4]int
	for i := range v {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Bounds{}, false
		}
		v[i] = n
	}
	return newBounds(v[0], v[1], v[2]-v[0], v[3]-v[1])
}

// ParseIOSBounds reads the x, y, width and height attributes of an iOS node.
// Missing x or y default to zero; missing or non-positive dimensions and any
// non-integer value yield false.
func ParseIOSBounds(n *Node) (Bounds, bool) {
	var v [4]int
	for i, name := range [4]string{"x", "y", "width", "height"} {
		raw := Attr(n, name)
		if raw == "" {
			continue
		}
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return Bounds{}, false
		}
		v[i] = parsed
	}
	return newBounds(v[0], v[1], v[2], v[3])
}

// NodeBounds parses the rectangle of n for the given platform. Callers treat
// false as "exclude this node", never as a zero rectangle.
func NodeBounds(n *Node, p Platform) (Bounds, bool) {
	if p == IOS {
		return ParseIOSBounds(n)
	}
	return ParseAndroidBounds(Attr(n, "bounds"))
}
