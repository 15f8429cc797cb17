package adapter

import (
	"bytes"
	"image"
	"image/png"
	"io"
)

// ImageEncoder defines an interface for encoding images
//
//go:generate mockgen -source=image.go -destination=../mocks/image.go -package=mocks -mock_names=ImageEncoder=MockImageEncoder
type ImageEncoder interface {
	// EncodePNG encodes an image to PNG format
	EncodePNG(w io.Writer, img image.Image) error
}

// RealImageEncoder implements ImageEncoder using the image/png package
type RealImageEncoder struct {
	encoder *png.Encoder
}

// NewImageEncoder creates a new real image encoder
func NewImageEncoder() ImageEncoder {
	return &RealImageEncoder{
		encoder: &png.Encoder{CompressionLevel: png.BestCompression},
	}
}

// EncodePNG encodes an image to PNG format
func (e *RealImageEncoder) EncodePNG(w io.Writer, img image.Image) error {
	return e.encoder.Encode(w, img)
}

// EncodePNGBytes encodes an image to an in-memory PNG
func EncodePNGBytes(enc ImageEncoder, img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := enc.EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
