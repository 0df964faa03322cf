package resample

import (
	"math"

	"github.com/disintegration/imaging"
	"vincit.fi/gallery-thumbs/api/apitype"
)

type indexWeight struct {
	index  int
	weight float64
}

// precomputeWeights returns, for every destination index, the source indices
// and normalised weights that contribute to it. When downscaling the kernel
// is stretched by the scale factor so every source sample is covered.
func precomputeWeights(dstSize int, srcSize int, filter imaging.ResampleFilter) [][]indexWeight {
	du := float64(srcSize) / float64(dstSize)
	scale := math.Max(du, 1.0)
	ru := math.Ceil(scale * filter.Support)

	out := make([][]indexWeight, dstSize)
	for v := 0; v < dstSize; v++ {
		fu := (float64(v)+0.5)*du - 0.5

		begin := max(int(math.Ceil(fu-ru)), 0)
		end := min(int(math.Floor(fu+ru)), srcSize-1)

		var sum float64
		var weights []indexWeight
		for u := begin; u <= end; u++ {
			w := filter.Kernel((float64(u) - fu) / scale)
			if w != 0 {
				sum += w
				weights = append(weights, indexWeight{index: u, weight: w})
			}
		}
		if sum != 0 {
			for i := range weights {
				weights[i].weight /= sum
			}
		}
		out[v] = weights
	}
	return out
}

func resizeConvolve(src []float64, from apitype.Size, to apitype.Size, channels int, filter imaging.ResampleFilter) []float64 {
	horizontal := resizeHorizontal(src, from, to.Width(), channels, filter)
	return resizeVertical(horizontal, apitype.SizeOf(to.Width(), from.Height()), to.Height(), channels, filter)
}

func resizeHorizontal(src []float64, from apitype.Size, dstWidth int, channels int, filter imaging.ResampleFilter) []float64 {
	weights := precomputeWeights(dstWidth, from.Width(), filter)
	dst := make([]float64, from.Height()*dstWidth*channels)
	for y := 0; y < from.Height(); y++ {
		srcRow := src[y*from.Width()*channels : (y+1)*from.Width()*channels]
		dstRow := dst[y*dstWidth*channels : (y+1)*dstWidth*channels]
		for x, contributions := range weights {
			out := dstRow[x*channels : (x+1)*channels]
			for _, contribution := range contributions {
				in := srcRow[contribution.index*channels : (contribution.index+1)*channels]
				for c := range out {
					out[c] += in[c] * contribution.weight
				}
			}
		}
	}
	return dst
}

func resizeVertical(src []float64, from apitype.Size, dstHeight int, channels int, filter imaging.ResampleFilter) []float64 {
	weights := precomputeWeights(dstHeight, from.Height(), filter)
	rowLength := from.Width() * channels
	dst := make([]float64, dstHeight*rowLength)
	for y, contributions := range weights {
		dstRow := dst[y*rowLength : (y+1)*rowLength]
		for _, contribution := range contributions {
			srcRow := src[contribution.index*rowLength : (contribution.index+1)*rowLength]
			for i := range dstRow {
				dstRow[i] += srcRow[i] * contribution.weight
			}
		}
	}
	return dst
}

// nearestIndices samples the source at the centre of each destination pixel.
func nearestIndices(dstSize int, srcSize int) []int {
	scale := float64(srcSize) / float64(dstSize)
	indices := make([]int, dstSize)
	for i := range indices {
		indices[i] = min(int((float64(i)+0.5)*scale), srcSize-1)
	}
	return indices
}

func resizeNearest(src []float64, from apitype.Size, to apitype.Size, channels int) []float64 {
	xs := nearestIndices(to.Width(), from.Width())
	ys := nearestIndices(to.Height(), from.Height())
	dst := make([]float64, to.Height()*to.Width()*channels)
	for y, sy := range ys {
		for x, sx := range xs {
			srcOffset := (sy*from.Width() + sx) * channels
			dstOffset := (y*to.Width() + x) * channels
			copy(dst[dstOffset:dstOffset+channels], src[srcOffset:srcOffset+channels])
		}
	}
	return dst
}
