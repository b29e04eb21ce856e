package platform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/mobile-locator/internal/model"
)

// Direction is a scroll direction.
type Direction string

const (
	ScrollUp   Direction = "up"
	ScrollDown Direction = "down"
)

// ParseDirection converts a flag or request value to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return ScrollUp, nil
	case "down":
		return ScrollDown, nil
	default:
		return "", fmt.Errorf("invalid direction %q: must be 'up' or 'down'", s)
	}
}

// Point is a coordinate in either image or device space.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// ParsePoint parses an "x,y" string.
func ParsePoint(s string) (Point, error) {
	vals, err := parseInts(s, ",", 2)
	if err != nil {
		return Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return Point{X: vals[0], Y: vals[1]}, nil
}

// ParseSize parses a "WxH" string.
func ParseSize(s string) (model.Size, error) {
	vals, err := parseInts(strings.ToLower(s), "x", 2)
	if err != nil {
		return model.Size{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if vals[0] < 0 || vals[1] < 0 {
		return model.Size{}, fmt.Errorf("invalid size %q: negative dimension", s)
	}
	return model.Size{Width: vals[0], Height: vals[1]}, nil
}

func parseInts(s, sep string, n int) ([]int, error) {
	parts := strings.Split(s, sep)
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d values separated by %q", n, sep)
	}
	vals := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// Action is one input primitive sent to a backend, as recorded by backends
// that log what they were asked to do.
type Action struct {
	Kind      string    `yaml:"kind"                json:"kind"`
	X         int       `yaml:"x,omitempty"         json:"x,omitempty"`
	Y         int       `yaml:"y,omitempty"         json:"y,omitempty"`
	Direction Direction `yaml:"direction,omitempty" json:"direction,omitempty"`
}
