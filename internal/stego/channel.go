package stego

import (
	"bytes"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/stegavault/stegavault/internal/adapter"
	"github.com/stegavault/stegavault/internal/domain"
)

// OutputContentType is the content type of every image produced by the channel
const OutputContentType = "image/png"

// DefaultMaxPixels bounds the decoded RGBA buffer to about 100 MiB
const DefaultMaxPixels int64 = 25_000_000

// supportedTypes are the containers accepted as input.
// JPEG and GIF decode fine but do not preserve embedded bits once re-encoded.
var supportedTypes = []string{
	"image/png",
	"image/bmp",
	"image/tiff",
	"image/webp",
	"image/jpeg",
	"image/gif",
}

// Channel embeds and extracts tokens on encoded image bytes
//
//go:generate mockgen -source=channel.go -destination=../mocks/stego_channel.go -package=mocks -mock_names=Channel=MockStegoChannel
type Channel interface {
	// Decode detects the container and decodes the image
	Decode(data []byte) (image.Image, error)
	// EmbedImage embeds token into img and returns PNG bytes
	EmbedImage(img image.Image, token string) ([]byte, error)
	// EmbedBytes decodes data, embeds token and returns PNG bytes
	EmbedBytes(data []byte, token string) ([]byte, error)
	// ExtractBytes decodes data and extracts the embedded token, if any
	ExtractBytes(data []byte) (string, bool, error)
}

type channel struct {
	encoder   adapter.ImageEncoder
	maxPixels int64
}

// NewChannel creates a new steganographic channel.
// Images declaring more than maxPixels pixels are refused before decoding.
func NewChannel(encoder adapter.ImageEncoder, maxPixels int64) Channel {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &channel{encoder: encoder, maxPixels: maxPixels}
}

// Decode detects the container and decodes the image
func (c *channel) Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, domain.Validationf("image is empty")
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), supportedTypes...) {
		return nil, domain.Validationf("unsupported image type %s", mtype.String())
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, domain.NewError(domain.KindValidation, "image could not be decoded", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > c.maxPixels {
		return nil, domain.Validationf("image is %dx%d pixels, at most %d pixels are accepted",
			cfg.Width, cfg.Height, c.maxPixels)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, domain.NewError(domain.KindValidation, "image could not be decoded", err)
	}

	return img, nil
}

// EmbedImage embeds token into img and returns PNG bytes
func (c *channel) EmbedImage(img image.Image, token string) ([]byte, error) {
	out, err := Embed(img, token)
	if err != nil {
		return nil, err
	}

	data, err := adapter.EncodePNGBytes(c.encoder, out)
	if err != nil {
		return nil, domain.NewError(domain.KindInternal, "failed to encode image", err)
	}
	return data, nil
}

// EmbedBytes decodes data, embeds token and returns PNG bytes
func (c *channel) EmbedBytes(data []byte, token string) ([]byte, error) {
	img, err := c.Decode(data)
	if err != nil {
		return nil, err
	}
	return c.EmbedImage(img, token)
}

// ExtractBytes decodes data and extracts the embedded token, if any
func (c *channel) ExtractBytes(data []byte) (string, bool, error) {
	img, err := c.Decode(data)
	if err != nil {
		return "", false, err
	}

	token, ok := Extract(img)
	return token, ok, nil
}
