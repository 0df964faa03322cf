package backend

import (
	"fmt"
	"vincit.fi/gallery-thumbs/api/apitype"
	"vincit.fi/gallery-thumbs/backend/internal/codec"
	"vincit.fi/gallery-thumbs/backend/internal/resample"
	"vincit.fi/gallery-thumbs/common/logger"
)

// TargetSize resolves the size a single file is resized to. A positive bound
// fits the source within it, otherwise width and height are used as given.
func TargetSize(source apitype.Size, width int, height int, bound int) (apitype.Size, error) {
	if bound > 0 {
		return apitype.FitWithin(source, bound)
	}
	size := apitype.SizeOf(width, height)
	if !size.IsValid() {
		return size, fmt.Errorf("%w: %s", apitype.ErrInvalidSize, size)
	}
	return size, nil
}

// ResizeImageFile resizes a continuous image and writes it in the format
// given by the output extension.
func ResizeImageFile(imageCodec *codec.Codec, inPath string, outPath string, width int, height int, bound int, kind apitype.InterpolationKind) (apitype.Size, error) {
	source, err := imageCodec.Decode(inPath)
	if err != nil {
		return apitype.Size{}, err
	}
	size, err := TargetSize(source.Size(), width, height, bound)
	if err != nil {
		return size, err
	}

	logger.Info.Printf("Resize image '%s' %s -> %s (%s)", inPath, source.Size(), size, kind)
	resized, err := resample.ResizeImage(source, size, kind)
	if err != nil {
		return size, err
	}
	return size, imageCodec.Encode(resized, outPath)
}

// ResizeMaskFile resizes a categorical mask with nearest neighbour. With
// palette the output is written as a paletted PNG.
func ResizeMaskFile(imageCodec *codec.Codec, inPath string, outPath string, width int, height int, bound int, palette bool) (apitype.Size, error) {
	mask, err := imageCodec.ReadMask(inPath, apitype.Int64)
	if err != nil {
		return apitype.Size{}, err
	}
	if mask.Channels() != 1 {
		return apitype.Size{}, fmt.Errorf("%w: mask '%s' has %d channels", apitype.ErrInvalidSize, inPath, mask.Channels())
	}
	size, err := TargetSize(mask.Size(), width, height, bound)
	if err != nil {
		return size, err
	}

	logger.Info.Printf("Resize mask '%s' %s -> %s", inPath, mask.Size(), size)
	resized, err := resample.ResizeMask(mask, size)
	if err != nil {
		return size, err
	}
	if palette {
		return size, imageCodec.EncodeMask(resized, outPath)
	}
	return size, imageCodec.Encode(resized, outPath)
}
