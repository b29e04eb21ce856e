// Package imaging re-encodes screenshots for caching and draws locator
// overlays on them.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/mj1618/mobile-locator/internal/model"
)

// DefaultQuality is the JPEG quality screenshots are re-encoded with.
const DefaultQuality = 60

// Decode decodes a PNG or JPEG screenshot.
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return img, nil
}

// Dimensions returns the pixel size of an encoded screenshot without
// decoding the pixel data.
func Dimensions(data []byte) (model.Size, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return model.Size{}, fmt.Errorf("decode screenshot header: %w", err)
	}
	return model.Size{Width: cfg.Width, Height: cfg.Height}, nil
}

// MIMEType sniffs the image type of an encoded screenshot.
func MIMEType(data []byte) string {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "application/octet-stream"
	}
	return "image/" + format
}

// Optimize re-encodes a screenshot as JPEG at the given quality (0 selects
// DefaultQuality).
func Optimize(data []byte, quality int) ([]byte, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Encode(img, "jpg", quality)
}

// Encode writes img as "png" or "jpg".
func Encode(img image.Image, format string, quality int) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	var f imaging.Format
	switch strings.ToLower(format) {
	case "png":
		f = imaging.PNG
	case "jpg", "jpeg", "":
		f = imaging.JPEG
	default:
		return nil, fmt.Errorf("unsupported image format %q: use png or jpg", format)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
