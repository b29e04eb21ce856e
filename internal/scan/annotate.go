package scan

import (
	"fmt"

	"github.com/mj1618/mobile-locator/internal/imaging"
)

// Annotated returns the scan screenshot as PNG with every element's
// rectangle and variable name drawn on it.
func (r *Result) Annotated() ([]byte, error) {
	if len(r.Image) == 0 {
		return nil, fmt.Errorf("annotate: scan has no screenshot")
	}
	img, err := imaging.Decode(r.Image)
	if err != nil {
		return nil, err
	}
	boxes := make([]imaging.Box, 0, len(r.Elements))
	for _, el := range r.Elements {
		boxes = append(boxes, imaging.Box{Bounds: el.Bounds, Label: el.VariableName})
	}
	return imaging.Encode(imaging.Annotate(img, boxes, r.Window), "png", 0)
}
