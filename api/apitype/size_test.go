package apitype

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"image"
	"testing"
)

func TestFitWithin(t *testing.T) {
	a := assert.New(t)
	type args struct {
		sourceWidth  int
		sourceHeight int
		bound        int
	}
	tests := []struct {
		name   string
		args   args
		width  int
		height int
	}{
		{name: "h400 w200 -> 150", args: args{sourceWidth: 200, sourceHeight: 400, bound: 150}, width: 75, height: 150},
		{name: "h200 w400 -> 150", args: args{sourceWidth: 400, sourceHeight: 200, bound: 150}, width: 150, height: 75},
		{name: "h100 w100 -> 150", args: args{sourceWidth: 100, sourceHeight: 100, bound: 150}, width: 150, height: 150},
		// Shorter side is floored
		{name: "h300 w400 -> 100", args: args{sourceWidth: 400, sourceHeight: 300, bound: 100}, width: 100, height: 75},
		{name: "h333 w1000 -> 150", args: args{sourceWidth: 1000, sourceHeight: 333, bound: 150}, width: 150, height: 49},
		{name: "h1000 w333 -> 150", args: args{sourceWidth: 333, sourceHeight: 1000, bound: 150}, width: 49, height: 150},
		// Upscale
		{name: "h30 w40 -> 400", args: args{sourceWidth: 40, sourceHeight: 30, bound: 400}, width: 400, height: 300},
		// Too thin to keep a pixel on the short side
		{name: "h1 w1000 -> 100", args: args{sourceWidth: 1000, sourceHeight: 1, bound: 100}, width: 100, height: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FitWithin(SizeOf(tt.args.sourceWidth, tt.args.sourceHeight), tt.args.bound)
			a.Nil(err)
			a.Equal(tt.width, got.Width())
			a.Equal(tt.height, got.Height())
		})
	}
}

func TestFitWithin_InvalidBound(t *testing.T) {
	a := assert.New(t)

	t.Run("Zero bound", func(t *testing.T) {
		_, err := FitWithin(SizeOf(100, 100), 0)
		a.ErrorIs(err, ErrInvalidBound)
	})
	t.Run("Negative bound", func(t *testing.T) {
		_, err := FitWithin(SizeOf(100, 100), -5)
		a.ErrorIs(err, ErrInvalidBound)
	})
	t.Run("Zero width source", func(t *testing.T) {
		_, err := FitWithin(SizeOf(0, 100), 150)
		a.ErrorIs(err, ErrInvalidBound)
	})
	t.Run("Zero height source", func(t *testing.T) {
		_, err := FitWithin(SizeOf(100, 0), 150)
		a.ErrorIs(err, ErrInvalidBound)
	})
}

func TestSizeOf(t *testing.T) {
	r := require.New(t)

	got := SizeOf(200, 100)
	r.Equal(200, got.Width())
	r.Equal(100, got.Height())
	r.Equal("200x100", got.String())
}

func TestSizeFromRectangle(t *testing.T) {
	a := assert.New(t)

	got := SizeFromRectangle(image.Rect(10, 20, 50, 100))
	a.Equal(40, got.Width())
	a.Equal(80, got.Height())
	a.True(got.IsValid())
	a.False(Size{}.IsValid())
}
