package resample

import (
	"fmt"

	"vincit.fi/gallery-thumbs/api/apitype"
	"vincit.fi/gallery-thumbs/common/logger"
)

// ResizeProbabilityVolume resizes a (height, width, classes) float volume
// channel by channel and renormalises every location so that its channel
// values sum to one again.
//
// The volume must already sum to one at every location. A location whose
// resized channel sum is zero yields NaN or Inf; that is not checked here.
func ResizeProbabilityVolume(volume *apitype.PixelBuffer, size apitype.Size) (*apitype.PixelBuffer, error) {
	return ResizeMaps(volume, size, true)
}

// ResizeMaps resizes score maps channel by channel with bilinear
// interpolation. normalize divides each location by its channel sum.
func ResizeMaps(volume *apitype.PixelBuffer, size apitype.Size, normalize bool) (*apitype.PixelBuffer, error) {
	if !volume.HasChannelAxis() {
		return nil, fmt.Errorf("%w: expected (height, width, classes), got %v", apitype.ErrInvalidSize, volume.Shape())
	}
	if !volume.DType().IsFloat() {
		return nil, fmt.Errorf("%w: probability maps must be float, got %s", apitype.ErrUnsupportedDType, volume.DType())
	}

	planes := make([]*apitype.PixelBuffer, volume.Channels())
	for c := range planes {
		plane, err := volume.Channel(c)
		if err != nil {
			return nil, err
		}
		if planes[c], err = Resize(plane, size, apitype.Bilinear); err != nil {
			return nil, err
		}
	}

	maps, err := apitype.Stack(planes)
	if err != nil {
		return nil, err
	}

	if normalize {
		if pix, ok := apitype.Samples[float64](maps); ok {
			renormalize(pix, maps.Channels())
		} else if pix, ok := apitype.Samples[float32](maps); ok {
			renormalize(pix, maps.Channels())
		}
	}
	logger.Trace.Printf("Resized %d maps %v -> %v", volume.Channels(), volume.Shape(), maps.Shape())
	return maps, nil
}

func renormalize[T float32 | float64](pix []T, channels int) {
	for i := 0; i < len(pix); i += channels {
		var sum float64
		for _, value := range pix[i : i+channels] {
			sum += float64(value)
		}
		for c := i; c < i+channels; c++ {
			pix[c] = T(float64(pix[c]) / sum)
		}
	}
}
