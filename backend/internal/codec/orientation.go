package codec

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	"vincit.fi/gallery-thumbs/common/logger"
)

const exifUnchangedOrientation = 1

// readOrientation returns the EXIF orientation tag, or 1 when the data has
// no readable EXIF block.
func readOrientation(data []byte) int {
	decodedExif, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		logger.Trace.Print("No Exif data: ", err)
		return exifUnchangedOrientation
	}
	tag, err := decodedExif.Get(exif.Orientation)
	if err != nil {
		return exifUnchangedOrientation
	}
	orientation, err := tag.Int(0)
	if err != nil {
		logger.Warn.Print("Invalid Exif orientation: ", err)
		return exifUnchangedOrientation
	}
	return orientation
}

// orient rotates and flips the image so that EXIF orientation 1 applies.
func orient(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	}
	return img
}
