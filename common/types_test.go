package common

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportedTextureDecode(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 1, color.RGBA{G: 255, A: 255})
	var encoded bytes.Buffer
	require.NoError(t, png.Encode(&encoded, img))

	tex := &ImportedTexture{
		Name:     "checker",
		Data:     encoded.Bytes(),
		MimeType: "image/png",
	}

	pixels, width, height, err := tex.Decode()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), width)
	assert.Equal(t, uint32(2), height)
	require.Len(t, pixels, 16)
	assert.Equal(t, byte(255), pixels[0])
	assert.Equal(t, 2, tex.Width)
	assert.Equal(t, 2, tex.Height)
}

func TestImportedTextureDecodeErrors(t *testing.T) {
	var nilTex *ImportedTexture
	_, _, _, err := nilTex.Decode()
	assert.Error(t, err)

	_, _, _, err = (&ImportedTexture{}).Decode()
	assert.Error(t, err)

	_, _, _, err = (&ImportedTexture{Data: []byte("not an image")}).Decode()
	assert.Error(t, err)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 5, Coalesce(0, 5, 7))
	assert.Equal(t, "a", Coalesce("", "a"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
