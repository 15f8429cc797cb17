// Package stego hides a token in the least significant bits of an image's color channels.
//
// The carrier is normalized to an opaque 8-bit RGB raster anchored at the origin. The payload
// (magic, token, 0x00 sentinel) is written most significant bit first into the low bit of the
// R, G and B channels of consecutive pixels in row-major order. The capacity boundary counts
// the whole payload, so a token fits when 8*(4 + len(token) + 1) <= 3*width*height.
package stego

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/stegavault/stegavault/internal/domain"
)

const (
	// Magic prefixes every embedded payload
	Magic = "SVC1"

	sentinel         byte = 0x00
	channelsPerPixel      = 3
	rgbaStride            = 4
)

// Capacity returns the number of payload bits a width x height image can carry
func Capacity(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return channelsPerPixel * width * height
}

// PayloadBits returns the number of bits needed to embed token, magic and sentinel included
func PayloadBits(token string) int {
	return 8 * (len(Magic) + len(token) + 1)
}

// Embed returns a copy of img carrying token. The input image is never modified.
func Embed(img image.Image, token string) (*image.RGBA, error) {
	if token == "" {
		return nil, domain.Validationf("token must not be empty")
	}
	if bytes.IndexByte([]byte(token), sentinel) >= 0 {
		return nil, domain.Validationf("token must not contain a NUL byte")
	}

	out := normalize(img)
	width, height := out.Rect.Dx(), out.Rect.Dy()

	need, have := PayloadBits(token), Capacity(width, height)
	if need > have {
		return nil, domain.ErrImageCapacity.Wrap(
			fmt.Errorf("payload needs %d bits, %dx%d image holds %d", need, width, height, have))
	}

	payload := make([]byte, 0, len(Magic)+len(token)+1)
	payload = append(payload, Magic...)
	payload = append(payload, token...)
	payload = append(payload, sentinel)

	bit := 0
	for _, b := range payload {
		for shift := 7; shift >= 0; shift-- {
			off := pixOffset(bit)
			out.Pix[off] = out.Pix[off]&^1 | (b>>uint(shift))&1
			bit++
		}
	}

	return out, nil
}

// Extract reads an embedded token from img.
// It reports false when the magic is missing or no sentinel appears within capacity.
func Extract(img image.Image) (string, bool) {
	in := normalize(img)
	maxBytes := Capacity(in.Rect.Dx(), in.Rect.Dy()) / 8
	if maxBytes < len(Magic)+2 {
		return "", false
	}

	for i := 0; i < len(Magic); i++ {
		if readByte(in, i) != Magic[i] {
			return "", false
		}
	}

	var token []byte
	for n := len(Magic); n < maxBytes; n++ {
		b := readByte(in, n)
		if b == sentinel {
			if len(token) == 0 {
				return "", false
			}
			return string(token), true
		}
		token = append(token, b)
	}

	return "", false
}

// normalize copies img into an opaque RGBA raster at the origin.
// Colors go through the non-premultiplied model so palette, gray and alpha inputs map consistently.
func normalize(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := out.PixOffset(x, y)
			out.Pix[i+0] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = 0xff
		}
	}
	return out
}

// pixOffset maps a payload bit index to its byte in an origin-anchored RGBA raster
func pixOffset(bit int) int {
	return (bit/channelsPerPixel)*rgbaStride + bit%channelsPerPixel
}

func readByte(img *image.RGBA, n int) byte {
	var b byte
	for i := 0; i < 8; i++ {
		b = b<<1 | img.Pix[pixOffset(n*8+i)]&1
	}
	return b
}
