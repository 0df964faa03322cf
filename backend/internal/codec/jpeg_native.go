//go:build !libjpeg

package codec

import (
	"image"
	"image/jpeg"
	"io"
)

func decodeJpeg(r io.Reader) (image.Image, error) {
	return jpeg.Decode(r)
}

func encodeJpeg(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}
