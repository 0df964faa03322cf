package codec

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"vincit.fi/gallery-thumbs/api/apitype"
)

// ImageToBuffer converts a decoded image into a pixel buffer:
//   - gray images become 2D uint8 or uint16 buffers
//   - paletted images become 2D uint8 buffers of palette indices
//   - 16-bit colour images become uint16 (H, W, 3|4)
//   - everything else becomes uint8 (H, W, 3|4)
//
// The alpha channel is dropped when every pixel is opaque.
func ImageToBuffer(img image.Image) *apitype.PixelBuffer {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *image.Gray:
		pix := make([]uint8, width*height)
		for y := 0; y < height; y++ {
			offset := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(pix[y*width:(y+1)*width], src.Pix[offset:offset+width])
		}
		buffer, _ := apitype.FromSamples(height, width, 0, pix)
		return buffer
	case *image.Paletted:
		pix := make([]uint8, width*height)
		for y := 0; y < height; y++ {
			offset := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(pix[y*width:(y+1)*width], src.Pix[offset:offset+width])
		}
		buffer, _ := apitype.FromSamples(height, width, 0, pix)
		return buffer
	case *image.Gray16:
		pix := make([]uint16, width*height)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				pix[y*width+x] = src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y
			}
		}
		buffer, _ := apitype.FromSamples(height, width, 0, pix)
		return buffer
	case *image.RGBA64, *image.NRGBA64:
		return wideColorToBuffer(img)
	}

	nrgba := imaging.Clone(img)
	channels := 4
	if isOpaque(nrgba) {
		channels = 3
	}
	pix := make([]uint8, width*height*channels)
	for i := 0; i < width*height; i++ {
		copy(pix[i*channels:(i+1)*channels], nrgba.Pix[i*4:i*4+channels])
	}
	buffer, _ := apitype.FromSamples(height, width, channels, pix)
	return buffer
}

func wideColorToBuffer(img image.Image) *apitype.PixelBuffer {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	nrgba := image.NewNRGBA64(image.Rect(0, 0, width, height))
	opaque := true
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBA64Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA64)
			opaque = opaque && c.A == 0xffff
			nrgba.SetNRGBA64(x, y, c)
		}
	}
	channels := 4
	if opaque {
		channels = 3
	}
	pix := make([]uint16, 0, width*height*channels)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := nrgba.NRGBA64At(x, y)
			pix = append(pix, c.R, c.G, c.B)
			if channels == 4 {
				pix = append(pix, c.A)
			}
		}
	}
	buffer, _ := apitype.FromSamples(height, width, channels, pix)
	return buffer
}

func isOpaque(img *image.NRGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			return false
		}
	}
	return true
}

// BufferToImage is the inverse of ImageToBuffer. Integer masks are narrowed
// to the smallest gray depth that holds every value.
func BufferToImage(buffer *apitype.PixelBuffer) (image.Image, error) {
	rect := image.Rect(0, 0, buffer.Width(), buffer.Height())
	channels := buffer.Channels()

	switch buffer.DType() {
	case apitype.Uint8:
		pix, _ := apitype.Samples[uint8](buffer)
		switch channels {
		case 1:
			img := image.NewGray(rect)
			copy(img.Pix, pix)
			return img, nil
		case 3:
			img := image.NewRGBA(rect)
			for i := 0; i < len(pix)/3; i++ {
				copy(img.Pix[i*4:i*4+3], pix[i*3:i*3+3])
				img.Pix[i*4+3] = 0xff
			}
			return img, nil
		case 4:
			img := image.NewNRGBA(rect)
			copy(img.Pix, pix)
			return img, nil
		}
	case apitype.Uint16:
		pix, _ := apitype.Samples[uint16](buffer)
		switch channels {
		case 1:
			img := image.NewGray16(rect)
			for i, v := range pix {
				img.SetGray16(i%buffer.Width(), i/buffer.Width(), color.Gray16{Y: v})
			}
			return img, nil
		case 3, 4:
			img := image.NewNRGBA64(rect)
			for i := 0; i < buffer.Width()*buffer.Height(); i++ {
				c := color.NRGBA64{R: pix[i*channels], G: pix[i*channels+1], B: pix[i*channels+2], A: 0xffff}
				if channels == 4 {
					c.A = pix[i*channels+3]
				}
				img.SetNRGBA64(i%buffer.Width(), i/buffer.Width(), c)
			}
			return img, nil
		}
	case apitype.Int32, apitype.Int64:
		if channels == 1 {
			return integerMaskToGray(buffer)
		}
	default:
		return nil, fmt.Errorf("%w: %s buffers cannot be stored as an image", apitype.ErrUnsupportedDType, buffer.DType())
	}
	return nil, fmt.Errorf("%w: %s buffer with %d channels cannot be stored as an image",
		apitype.ErrUnsupportedDType, buffer.DType(), channels)
}

func integerMaskToGray(buffer *apitype.PixelBuffer) (image.Image, error) {
	low, high := buffer.MinMax()
	if low < 0 || high > 0xffff {
		return nil, fmt.Errorf("%w: values [%v, %v] do not fit 16-bit gray", apitype.ErrUnsupportedDType, low, high)
	}
	narrowed := apitype.Uint8
	if high > 0xff {
		narrowed = apitype.Uint16
	}
	converted, err := buffer.AsType(narrowed)
	if err != nil {
		return nil, err
	}
	return BufferToImage(converted)
}

// MaskToPaletted stores class ids as palette indices.
func MaskToPaletted(mask *apitype.PixelBuffer) (*image.Paletted, error) {
	if mask.HasChannelAxis() && mask.Channels() != 1 {
		return nil, fmt.Errorf("%w: mask must be 2D, got %v", apitype.ErrInvalidSize, mask.Shape())
	}
	if !mask.DType().IsInteger() {
		return nil, fmt.Errorf("%w: mask must be integer, got %s", apitype.ErrUnsupportedDType, mask.DType())
	}
	low, high := mask.MinMax()
	if low < 0 || high > 0xff {
		return nil, fmt.Errorf("%w: class ids [%v, %v] do not fit a palette", apitype.ErrUnsupportedDType, low, high)
	}

	colormap := apitype.Colormap(256)
	palette := make(color.Palette, len(colormap))
	for i, c := range colormap {
		palette[i] = c
	}

	img := image.NewPaletted(image.Rect(0, 0, mask.Width(), mask.Height()), palette)
	for i, value := range mask.Float64s() {
		img.Pix[i] = uint8(value)
	}
	return img, nil
}

// toJpegCompatible keeps gray and RGB images as-is and drops alpha from
// anything else. 16-bit data is rejected.
func toJpegCompatible(img image.Image) (image.Image, error) {
	switch src := img.(type) {
	case *image.Gray, *image.RGBA, *image.YCbCr:
		return img, nil
	case *image.NRGBA:
		rgba := image.NewRGBA(src.Rect)
		for i := 0; i < len(src.Pix); i += 4 {
			copy(rgba.Pix[i:i+3], src.Pix[i:i+3])
			rgba.Pix[i+3] = 0xff
		}
		return rgba, nil
	case *image.Paletted:
		return imaging.Clone(src), nil
	}
	return nil, fmt.Errorf("%w: JPEG stores 8-bit samples only", apitype.ErrUnsupportedDType)
}
