package apitype

import (
	"fmt"
	"math"
	"strings"
)

type DType int

const (
	Uint8 DType = iota
	Uint16
	Int32
	Int64
	Float32
	Float64
)

var dtypeNames = map[DType]string{
	Uint8:   "uint8",
	Uint16:  "uint16",
	Int32:   "int32",
	Int64:   "int64",
	Float32: "float32",
	Float64: "float64",
}

func ParseDType(value string) (DType, error) {
	name := strings.ToLower(strings.TrimSpace(value))
	for dtype, dtypeName := range dtypeNames {
		if dtypeName == name {
			return dtype, nil
		}
	}
	return Uint8, fmt.Errorf("%w: '%s'", ErrUnsupportedDType, value)
}

func (s DType) String() string {
	if name, ok := dtypeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("DType(%d)", int(s))
}

func (s DType) IsValid() bool {
	_, ok := dtypeNames[s]
	return ok
}

func (s DType) IsFloat() bool {
	return s == Float32 || s == Float64
}

func (s DType) IsInteger() bool {
	return s.IsValid() && !s.IsFloat()
}

// Range returns the representable range of an integer dtype. Float dtypes
// report an unbounded range.
func (s DType) Range() (float64, float64) {
	switch s {
	case Uint8:
		return 0, math.MaxUint8
	case Uint16:
		return 0, math.MaxUint16
	case Int32:
		return math.MinInt32, math.MaxInt32
	case Int64:
		return math.MinInt64, math.MaxInt64
	}
	return math.Inf(-1), math.Inf(1)
}

// Cast converts a computed value into the value space of the dtype.
// Integers are rounded half away from zero and clamped, float32 loses
// precision, float64 is stored as-is.
func (s DType) Cast(value float64) float64 {
	switch s {
	case Float64:
		return value
	case Float32:
		return float64(float32(value))
	}
	if math.IsNaN(value) {
		return 0
	}
	low, high := s.Range()
	rounded := math.Round(value)
	if rounded < low {
		return low
	} else if rounded > high {
		return high
	}
	return rounded
}
