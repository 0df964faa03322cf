//go:build libjpeg

package codec

import (
	"image"
	"io"

	"github.com/pixiv/go-libjpeg/jpeg"
)

var decoderOptions = &jpeg.DecoderOptions{}

func decodeJpeg(r io.Reader) (image.Image, error) {
	return jpeg.Decode(r, decoderOptions)
}

func encodeJpeg(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.EncoderOptions{Quality: quality})
}
