// Package resample resizes pixel buffers with an interpolation policy that
// matches the data: smooth filters for continuous images and probability
// maps, nearest neighbour for categorical masks.
package resample

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"vincit.fi/gallery-thumbs/api/apitype"
)

// Resize returns a new buffer of the target size with the same dtype and
// channel layout as the source. The source is never modified.
//
// 8-bit images with 1, 3 or 4 channels are resized with imaging, 16-bit
// single channel buffers with nfnt/resize and everything else with a
// separable float64 pass using the same triangle kernel. Integer results are
// rounded and clamped to the dtype range.
func Resize(buffer *apitype.PixelBuffer, size apitype.Size, kind apitype.InterpolationKind) (*apitype.PixelBuffer, error) {
	if !size.IsValid() {
		return nil, fmt.Errorf("%w: target %s", apitype.ErrInvalidSize, size)
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %s", apitype.ErrUnsupportedKind, kind)
	}
	if !buffer.Size().IsValid() {
		return nil, fmt.Errorf("%w: source %s", apitype.ErrInvalidSize, buffer.Size())
	}

	if kind == apitype.Nearest && buffer.Size() == size {
		return buffer.Clone(), nil
	}

	switch {
	case isImagingCompatible(buffer):
		return resizeWithImaging(buffer, size, kind)
	case isGray16(buffer):
		return resizeWithNfnt(buffer, size, kind)
	default:
		return resizeSeparable(buffer, size, kind)
	}
}

// ResizeImage resizes continuous image data.
func ResizeImage(buffer *apitype.PixelBuffer, size apitype.Size, kind apitype.InterpolationKind) (*apitype.PixelBuffer, error) {
	return Resize(buffer, size, kind)
}

// ResizeMask resizes categorical data. Class ids are never blended.
func ResizeMask(mask *apitype.PixelBuffer, size apitype.Size) (*apitype.PixelBuffer, error) {
	return Resize(mask, size, apitype.Nearest)
}

func isImagingCompatible(buffer *apitype.PixelBuffer) bool {
	if buffer.DType() != apitype.Uint8 {
		return false
	}
	switch buffer.Channels() {
	case 1, 3, 4:
		return true
	}
	return false
}

func isGray16(buffer *apitype.PixelBuffer) bool {
	return buffer.DType() == apitype.Uint16 && buffer.Channels() == 1
}

func imagingFilter(kind apitype.InterpolationKind) imaging.ResampleFilter {
	if kind == apitype.Nearest {
		return imaging.NearestNeighbor
	}
	return imaging.Linear
}

func nfntInterpolation(kind apitype.InterpolationKind) resize.InterpolationFunction {
	if kind == apitype.Nearest {
		return resize.NearestNeighbor
	}
	return resize.Bilinear
}

func channelsArg(buffer *apitype.PixelBuffer) int {
	if buffer.HasChannelAxis() {
		return buffer.Channels()
	}
	return 0
}

func resizeWithImaging(buffer *apitype.PixelBuffer, size apitype.Size, kind apitype.InterpolationKind) (*apitype.PixelBuffer, error) {
	resized := imaging.Resize(toNRGBA(buffer), size.Width(), size.Height(), imagingFilter(kind))
	return fromNRGBA(resized, buffer.Channels(), buffer.HasChannelAxis())
}

func toNRGBA(buffer *apitype.PixelBuffer) *image.NRGBA {
	pix, _ := apitype.Samples[uint8](buffer)
	channels := buffer.Channels()
	img := image.NewNRGBA(image.Rect(0, 0, buffer.Width(), buffer.Height()))
	for i := 0; i < buffer.Width()*buffer.Height(); i++ {
		src := pix[i*channels : i*channels+channels]
		dst := img.Pix[i*4 : i*4+4 : i*4+4]
		switch channels {
		case 1:
			dst[0], dst[1], dst[2], dst[3] = src[0], src[0], src[0], 0xff
		case 3:
			dst[0], dst[1], dst[2], dst[3] = src[0], src[1], src[2], 0xff
		case 4:
			copy(dst, src)
		}
	}
	return img
}

func fromNRGBA(img *image.NRGBA, channels int, hasChannelAxis bool) (*apitype.PixelBuffer, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pix := make([]uint8, width*height*channels)
	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+width*4]
		for x := 0; x < width; x++ {
			copy(pix[(y*width+x)*channels:(y*width+x+1)*channels], row[x*4:x*4+channels])
		}
	}
	if !hasChannelAxis {
		channels = 0
	}
	return apitype.FromSamples(height, width, channels, pix)
}

func resizeWithNfnt(buffer *apitype.PixelBuffer, size apitype.Size, kind apitype.InterpolationKind) (*apitype.PixelBuffer, error) {
	pix, _ := apitype.Samples[uint16](buffer)
	src := image.NewGray16(image.Rect(0, 0, buffer.Width(), buffer.Height()))
	for y := 0; y < buffer.Height(); y++ {
		for x := 0; x < buffer.Width(); x++ {
			src.SetGray16(x, y, color.Gray16{Y: pix[y*buffer.Width()+x]})
		}
	}

	resized := resize.Resize(uint(size.Width()), uint(size.Height()), src, nfntInterpolation(kind))

	bounds := resized.Bounds()
	out := make([]uint16, bounds.Dx()*bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			value := color.Gray16Model.Convert(resized.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray16)
			out[y*bounds.Dx()+x] = value.Y
		}
	}
	return apitype.FromSamples(bounds.Dy(), bounds.Dx(), channelsArg(buffer), out)
}

func resizeSeparable(buffer *apitype.PixelBuffer, size apitype.Size, kind apitype.InterpolationKind) (*apitype.PixelBuffer, error) {
	src := buffer.Float64s()
	var dst []float64
	if kind == apitype.Nearest {
		dst = resizeNearest(src, buffer.Size(), size, buffer.Channels())
	} else {
		dst = resizeConvolve(src, buffer.Size(), size, buffer.Channels(), imagingFilter(kind))
	}
	return apitype.FromFloat64s(buffer.DType(), size.Height(), size.Width(), channelsArg(buffer), dst)
}
