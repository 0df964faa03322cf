package apitype

import (
	"fmt"
	"math"
)

type Sample interface {
	uint8 | uint16 | int32 | int64 | float32 | float64
}

// PixelBuffer is a row-major (height, width[, channels]) sample array with
// an explicit dtype. Samples are interleaved: the sample for (y, x, c) is at
// (y*width+x)*channels + c. A buffer created with zero channels is 2D and
// reports a single channel.
type PixelBuffer struct {
	dtype          DType
	height         int
	width          int
	channels       int
	hasChannelAxis bool
	pix            interface{}
}

// NewPixelBuffer allocates a zeroed buffer. channels == 0 gives a 2D buffer.
func NewPixelBuffer(dtype DType, height int, width int, channels int) (*PixelBuffer, error) {
	if !dtype.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDType, dtype)
	}
	if height < 0 || width < 0 || channels < 0 {
		return nil, fmt.Errorf("%w: shape (%d, %d, %d)", ErrInvalidSize, height, width, channels)
	}
	buffer := &PixelBuffer{
		dtype:          dtype,
		height:         height,
		width:          width,
		channels:       max(channels, 1),
		hasChannelAxis: channels > 0,
	}
	buffer.pix = newPix(dtype, height*width*buffer.channels)
	return buffer, nil
}

// FromSamples wraps pix without copying. channels == 0 gives a 2D buffer.
func FromSamples[T Sample](height int, width int, channels int, pix []T) (*PixelBuffer, error) {
	dtype := dtypeOf(pix)
	buffer, err := NewPixelBuffer(dtype, 0, 0, channels)
	if err != nil {
		return nil, err
	}
	if height < 0 || width < 0 {
		return nil, fmt.Errorf("%w: shape (%d, %d, %d)", ErrInvalidSize, height, width, channels)
	}
	if len(pix) != height*width*buffer.channels {
		return nil, fmt.Errorf("%w: %d samples do not fill shape (%d, %d, %d)",
			ErrInvalidSize, len(pix), height, width, buffer.channels)
	}
	buffer.height = height
	buffer.width = width
	buffer.pix = pix
	return buffer, nil
}

// FromFloat64s builds a buffer of the given dtype, casting every value with
// DType.Cast.
func FromFloat64s(dtype DType, height int, width int, channels int, values []float64) (*PixelBuffer, error) {
	buffer, err := NewPixelBuffer(dtype, height, width, channels)
	if err != nil {
		return nil, err
	}
	if len(values) != buffer.Len() {
		return nil, fmt.Errorf("%w: %d samples do not fill shape %v", ErrInvalidSize, len(values), buffer.Shape())
	}
	for i, value := range values {
		buffer.put(i, dtype.Cast(value))
	}
	return buffer, nil
}

// Samples returns the backing slice when T matches the buffer dtype. The
// slice is shared with the buffer.
func Samples[T Sample](buffer *PixelBuffer) ([]T, bool) {
	pix, ok := buffer.pix.([]T)
	return pix, ok
}

func (s *PixelBuffer) DType() DType {
	return s.dtype
}

func (s *PixelBuffer) Height() int {
	return s.height
}

func (s *PixelBuffer) Width() int {
	return s.width
}

// Channels is 1 for a 2D buffer.
func (s *PixelBuffer) Channels() int {
	return s.channels
}

func (s *PixelBuffer) HasChannelAxis() bool {
	return s.hasChannelAxis
}

func (s *PixelBuffer) Shape() []int {
	if s.hasChannelAxis {
		return []int{s.height, s.width, s.channels}
	}
	return []int{s.height, s.width}
}

func (s *PixelBuffer) Size() Size {
	return Size{height: s.height, width: s.width}
}

// Len is the total number of samples.
func (s *PixelBuffer) Len() int {
	return s.height * s.width * s.channels
}

func (s *PixelBuffer) SameShape(other *PixelBuffer) bool {
	return s.height == other.height &&
		s.width == other.width &&
		s.channels == other.channels &&
		s.hasChannelAxis == other.hasChannelAxis
}

func (s *PixelBuffer) String() string {
	return fmt.Sprintf("PixelBuffer%v[%s]", s.Shape(), s.dtype)
}

func (s *PixelBuffer) Offset(y int, x int, c int) int {
	return (y*s.width+x)*s.channels + c
}

func (s *PixelBuffer) At(y int, x int, c int) float64 {
	return s.get(s.Offset(y, x, c))
}

// Set casts value to the buffer dtype before storing it.
func (s *PixelBuffer) Set(y int, x int, c int, value float64) {
	s.put(s.Offset(y, x, c), s.dtype.Cast(value))
}

// Float64s returns a copy of all samples widened to float64.
func (s *PixelBuffer) Float64s() []float64 {
	values := make([]float64, s.Len())
	switch pix := s.pix.(type) {
	case []uint8:
		for i, v := range pix {
			values[i] = float64(v)
		}
	case []uint16:
		for i, v := range pix {
			values[i] = float64(v)
		}
	case []int32:
		for i, v := range pix {
			values[i] = float64(v)
		}
	case []int64:
		for i, v := range pix {
			values[i] = float64(v)
		}
	case []float32:
		for i, v := range pix {
			values[i] = float64(v)
		}
	case []float64:
		copy(values, pix)
	}
	return values
}

func (s *PixelBuffer) Clone() *PixelBuffer {
	clone := *s
	clone.pix = clonePix(s.pix)
	return &clone
}

// AsType converts every sample with DType.Cast. Converting to the same
// dtype returns a copy.
func (s *PixelBuffer) AsType(dtype DType) (*PixelBuffer, error) {
	if !dtype.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDType, dtype)
	}
	if dtype == s.dtype {
		return s.Clone(), nil
	}
	return FromFloat64s(dtype, s.height, s.width, s.channelsArg(), s.Float64s())
}

// Channel copies a single channel out as a 2D buffer.
func (s *PixelBuffer) Channel(c int) (*PixelBuffer, error) {
	if c < 0 || c >= s.channels {
		return nil, fmt.Errorf("%w: channel %d of %d", ErrInvalidSize, c, s.channels)
	}
	plane, _ := NewPixelBuffer(s.dtype, s.height, s.width, 0)
	for i := 0; i < s.height*s.width; i++ {
		plane.put(i, s.get(i*s.channels+c))
	}
	return plane, nil
}

// Stack joins 2D planes of equal shape and dtype along a new channel axis.
func Stack(planes []*PixelBuffer) (*PixelBuffer, error) {
	if len(planes) == 0 {
		return nil, fmt.Errorf("%w: nothing to stack", ErrInvalidSize)
	}
	first := planes[0]
	stacked, err := NewPixelBuffer(first.dtype, first.height, first.width, len(planes))
	if err != nil {
		return nil, err
	}
	for c, plane := range planes {
		if plane.hasChannelAxis || plane.height != first.height || plane.width != first.width {
			return nil, fmt.Errorf("%w: plane %d has shape %v, expected %v", ErrInvalidSize, c, plane.Shape(), first.Shape())
		}
		if plane.dtype != first.dtype {
			return nil, fmt.Errorf("%w: plane %d is %s, expected %s", ErrUnsupportedDType, c, plane.dtype, first.dtype)
		}
		for i := 0; i < plane.height*plane.width; i++ {
			stacked.put(i*len(planes)+c, plane.get(i))
		}
	}
	return stacked, nil
}

// Equal reports whether shape, dtype and every sample match exactly.
func (s *PixelBuffer) Equal(other *PixelBuffer) bool {
	if other == nil || s.dtype != other.dtype || !s.SameShape(other) {
		return false
	}
	for i := 0; i < s.Len(); i++ {
		if s.get(i) != other.get(i) {
			return false
		}
	}
	return true
}

// MinMax returns the smallest and largest sample. Empty buffers return 0, 0.
func (s *PixelBuffer) MinMax() (float64, float64) {
	if s.Len() == 0 {
		return 0, 0
	}
	low, high := math.Inf(1), math.Inf(-1)
	for i := 0; i < s.Len(); i++ {
		v := s.get(i)
		low = math.Min(low, v)
		high = math.Max(high, v)
	}
	return low, high
}

func (s *PixelBuffer) channelsArg() int {
	if s.hasChannelAxis {
		return s.channels
	}
	return 0
}

func (s *PixelBuffer) get(i int) float64 {
	switch pix := s.pix.(type) {
	case []uint8:
		return float64(pix[i])
	case []uint16:
		return float64(pix[i])
	case []int32:
		return float64(pix[i])
	case []int64:
		return float64(pix[i])
	case []float32:
		return float64(pix[i])
	case []float64:
		return pix[i]
	}
	return 0
}

// put expects a value that has already been through DType.Cast.
func (s *PixelBuffer) put(i int, value float64) {
	switch pix := s.pix.(type) {
	case []uint8:
		pix[i] = uint8(value)
	case []uint16:
		pix[i] = uint16(value)
	case []int32:
		pix[i] = int32(value)
	case []int64:
		// float64(MaxInt64) rounds up to 2^63 which does not convert back
		if value >= math.MaxInt64 {
			pix[i] = math.MaxInt64
		} else {
			pix[i] = int64(value)
		}
	case []float32:
		pix[i] = float32(value)
	case []float64:
		pix[i] = value
	}
}

func newPix(dtype DType, n int) interface{} {
	switch dtype {
	case Uint8:
		return make([]uint8, n)
	case Uint16:
		return make([]uint16, n)
	case Int32:
		return make([]int32, n)
	case Int64:
		return make([]int64, n)
	case Float32:
		return make([]float32, n)
	default:
		return make([]float64, n)
	}
}

func clonePix(pix interface{}) interface{} {
	switch p := pix.(type) {
	case []uint8:
		return append([]uint8(nil), p...)
	case []uint16:
		return append([]uint16(nil), p...)
	case []int32:
		return append([]int32(nil), p...)
	case []int64:
		return append([]int64(nil), p...)
	case []float32:
		return append([]float32(nil), p...)
	case []float64:
		return append([]float64(nil), p...)
	}
	return nil
}

func dtypeOf(pix interface{}) DType {
	switch pix.(type) {
	case []uint8:
		return Uint8
	case []uint16:
		return Uint16
	case []int32:
		return Int32
	case []int64:
		return Int64
	case []float32:
		return Float32
	case []float64:
		return Float64
	}
	return DType(-1)
}
