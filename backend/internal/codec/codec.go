// Package codec reads image files into pixel buffers and writes pixel
// buffers back to disk. The output format is chosen by file extension.
package codec

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"vincit.fi/gallery-thumbs/api"
	"vincit.fi/gallery-thumbs/api/apitype"
	"vincit.fi/gallery-thumbs/common/logger"
)

const DefaultJpegQuality = 75

type format string

const (
	formatPng  format = "png"
	formatJpeg format = "jpeg"
	formatBmp  format = "bmp"
	formatTiff format = "tiff"
)

var formatsByExtension = map[string]format{
	".png":  formatPng,
	".jpg":  formatJpeg,
	".jpeg": formatJpeg,
	".bmp":  formatBmp,
	".tif":  formatTiff,
	".tiff": formatTiff,
}

type Codec struct {
	jpegQuality int
	autoOrient  bool

	api.Codec
}

// NewCodec returns a file codec. autoOrient applies the EXIF orientation of
// JPEG sources so that the decoded buffer is upright.
func NewCodec(jpegQuality int, autoOrient bool) *Codec {
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = DefaultJpegQuality
	}
	return &Codec{
		jpegQuality: jpegQuality,
		autoOrient:  autoOrient,
	}
}

func IsSupported(path string) bool {
	_, ok := formatsByExtension[strings.ToLower(filepath.Ext(path))]
	return ok
}

func (s *Codec) Decode(path string) (*apitype.PixelBuffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %w", apitype.ErrDecode, path, err)
	}
	buffer, err := s.DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", path, err)
	}
	logger.Trace.Printf("Decoded '%s' into %s", path, buffer)
	return buffer, nil
}

// DecodeBytes decodes an in-memory encoded image.
func (s *Codec) DecodeBytes(data []byte) (*apitype.PixelBuffer, error) {
	var img image.Image
	var err error
	if isJpeg(data) {
		img, err = decodeJpeg(bytes.NewReader(data))
		if err == nil && s.autoOrient {
			img = orient(img, readOrientation(data))
		}
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apitype.ErrDecode, err)
	}
	return ImageToBuffer(img), nil
}

// Encode writes the buffer in the format given by the path extension. The
// file is only created once the image has been encoded in full.
func (s *Codec) Encode(buffer *apitype.PixelBuffer, path string) error {
	img, err := BufferToImage(buffer)
	if err != nil {
		return fmt.Errorf("%w: '%s': %w", apitype.ErrEncode, path, err)
	}
	return s.encodeImage(img, path)
}

// EncodeMask writes a categorical 2D mask as a paletted PNG coloured with
// Colormap. Decoding the file gives back the class ids.
func (s *Codec) EncodeMask(mask *apitype.PixelBuffer, path string) error {
	if formatsByExtension[strings.ToLower(filepath.Ext(path))] != formatPng {
		return fmt.Errorf("%w: '%s': masks are written as PNG", apitype.ErrEncode, path)
	}
	img, err := MaskToPaletted(mask)
	if err != nil {
		return fmt.Errorf("%w: '%s': %w", apitype.ErrEncode, path, err)
	}
	return s.encodeImage(img, path)
}

// ReadMask decodes a mask file and converts it to dtype.
func (s *Codec) ReadMask(path string, dtype apitype.DType) (*apitype.PixelBuffer, error) {
	mask, err := s.Decode(path)
	if err != nil {
		return nil, err
	}
	return mask.AsType(dtype)
}

func (s *Codec) encodeImage(img image.Image, path string) error {
	imageFormat, ok := formatsByExtension[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return fmt.Errorf("%w: '%s': unsupported file extension", apitype.ErrEncode, path)
	}

	var content bytes.Buffer
	var err error
	switch imageFormat {
	case formatPng:
		err = png.Encode(&content, img)
	case formatJpeg:
		var jpegImage image.Image
		if jpegImage, err = toJpegCompatible(img); err == nil {
			err = encodeJpeg(&content, jpegImage, s.jpegQuality)
		}
	case formatBmp:
		err = bmp.Encode(&content, img)
	case formatTiff:
		err = tiff.Encode(&content, img, &tiff.Options{Compression: tiff.Deflate})
	}
	if err != nil {
		return fmt.Errorf("%w: '%s': %w", apitype.ErrEncode, path, err)
	}

	if err := os.WriteFile(path, content.Bytes(), 0644); err != nil {
		return fmt.Errorf("%w: '%s': %w", apitype.ErrEncode, path, err)
	}
	logger.Trace.Printf("Encoded %s to '%s'", imageFormat, path)
	return nil
}

func isJpeg(data []byte) bool {
	return len(data) > 2 && data[0] == 0xff && data[1] == 0xd8
}
