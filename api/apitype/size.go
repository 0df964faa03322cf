package apitype

import (
	"fmt"
	"image"
)

// Size is an ordered (height, width) pair. Callers outside this package
// usually think in (width, height), so SizeOf takes the arguments in that
// order and the rest of the code only uses Height() and Width().
type Size struct {
	height int
	width  int
}

func SizeOf(width int, height int) Size {
	return Size{height: height, width: width}
}

func SizeFromRectangle(rectangle image.Rectangle) Size {
	return Size{
		height: rectangle.Dy(),
		width:  rectangle.Dx(),
	}
}

func (s Size) Height() int {
	return s.height
}

func (s Size) Width() int {
	return s.width
}

func (s Size) IsValid() bool {
	return s.height > 0 && s.width > 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.width, s.height)
}

// FitWithin scales the source so that its longer side equals bound. The
// shorter side is floor-rounded. Square sources take the width branch, which
// gives bound x bound either way.
func FitWithin(source Size, bound int) (Size, error) {
	if bound <= 0 {
		return Size{}, fmt.Errorf("%w: bound %d", ErrInvalidBound, bound)
	}
	if !source.IsValid() {
		return Size{}, fmt.Errorf("%w: source %s", ErrInvalidBound, source)
	}

	if source.height > source.width {
		return Size{
			height: bound,
			width:  source.width * bound / source.height,
		}, nil
	} else {
		return Size{
			height: source.height * bound / source.width,
			width:  bound,
		}, nil
	}
}
