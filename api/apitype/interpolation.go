package apitype

import (
	"fmt"
	"strings"
)

type InterpolationKind int

const (
	Bilinear InterpolationKind = iota
	Linear
	Nearest
)

func ParseInterpolationKind(value string) (InterpolationKind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "bilinear":
		return Bilinear, nil
	case "linear":
		return Linear, nil
	case "nearest":
		return Nearest, nil
	}
	return Bilinear, fmt.Errorf("%w: '%s'", ErrUnsupportedKind, value)
}

func (s InterpolationKind) IsValid() bool {
	return s == Bilinear || s == Linear || s == Nearest
}

func (s InterpolationKind) String() string {
	switch s {
	case Bilinear:
		return "bilinear"
	case Linear:
		return "linear"
	case Nearest:
		return "nearest"
	}
	return fmt.Sprintf("InterpolationKind(%d)", int(s))
}
