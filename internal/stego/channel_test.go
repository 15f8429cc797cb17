package stego_test

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/stegavault/stegavault/internal/adapter"
	"github.com/stegavault/stegavault/internal/domain"
	"github.com/stegavault/stegavault/internal/stego"
)

func stegoPNG(t *testing.T, ch stego.Channel) []byte {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, noiseRGBA(64, 64, 11), &jpeg.Options{Quality: 90}))

	// A lossy upload is still an acceptable mint input
	data, err := ch.EmbedBytes(buf.Bytes(), testToken)
	require.NoError(t, err)
	return data
}

func TestChannel_EmbedExtractBytes(t *testing.T) {
	ch := stego.NewChannel(adapter.NewImageEncoder(), 0)
	data := stegoPNG(t, ch)

	img, err := ch.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())

	token, ok, err := ch.ExtractBytes(data)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testToken, token)
}

func TestChannel_LosslessRecontainerization(t *testing.T) {
	ch := stego.NewChannel(adapter.NewImageEncoder(), 0)
	img, err := ch.Decode(stegoPNG(t, ch))
	require.NoError(t, err)

	tests := []struct {
		name   string
		encode func(buf *bytes.Buffer) error
	}{
		{name: "bmp", encode: func(buf *bytes.Buffer) error { return bmp.Encode(buf, img) }},
		{name: "tiff", encode: func(buf *bytes.Buffer) error { return tiff.Encode(buf, img, nil) }},
		{name: "tiff deflate", encode: func(buf *bytes.Buffer) error {
			return tiff.Encode(buf, img, &tiff.Options{Compression: tiff.Deflate})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.encode(&buf))

			token, ok, err := ch.ExtractBytes(buf.Bytes())
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, testToken, token)
		})
	}
}

func TestChannel_LossyRecompressionDestroysPayload(t *testing.T) {
	ch := stego.NewChannel(adapter.NewImageEncoder(), 0)
	img, err := ch.Decode(stegoPNG(t, ch))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}))

	token, ok, err := ch.ExtractBytes(buf.Bytes())
	require.NoError(t, err)
	assert.False(t, ok && token == testToken, "payload survived lossy recompression")
}

func TestChannel_Decode_Rejects(t *testing.T) {
	ch := stego.NewChannel(adapter.NewImageEncoder(), 0)

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "plain text", data: []byte("definitely not an image")},
		{name: "truncated png", data: []byte("\x89PNG\r\n\x1a\n\x00\x00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ch.Decode(tt.data)
			require.Error(t, err)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}
}

// withDeclaredSize rewrites the IHDR dimensions of a PNG without adding pixel data
func withDeclaredSize(t *testing.T, data []byte, w, h uint32) []byte {
	require.Equal(t, "IHDR", string(data[12:16]))
	out := append([]byte(nil), data...)
	binary.BigEndian.PutUint32(out[16:20], w)
	binary.BigEndian.PutUint32(out[20:24], h)
	binary.BigEndian.PutUint32(out[29:33], crc32.ChecksumIEEE(out[12:29]))
	return out
}

func TestChannel_Decode_PixelLimit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, noiseRGBA(64, 64, 3)))
	small := buf.Bytes()

	t.Run("oversized declared header is refused before decoding", func(t *testing.T) {
		ch := stego.NewChannel(adapter.NewImageEncoder(), 0)
		huge := withDeclaredSize(t, small, 20000, 20000)

		_, err := ch.Decode(huge)
		require.Error(t, err)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		assert.Contains(t, err.Error(), "20000x20000")

		_, _, err = ch.ExtractBytes(huge)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})

	t.Run("limit is inclusive", func(t *testing.T) {
		ch := stego.NewChannel(adapter.NewImageEncoder(), 64*64)
		img, err := ch.Decode(small)
		require.NoError(t, err)
		assert.Equal(t, 64, img.Bounds().Dx())

		_, err = stego.NewChannel(adapter.NewImageEncoder(), 64*64-1).Decode(small)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})
}
