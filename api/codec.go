package api

import (
	"vincit.fi/gallery-thumbs/api/apitype"
)

// Codec turns image files into pixel buffers and back. Decode failures wrap
// apitype.ErrDecode, encode failures wrap apitype.ErrEncode.
type Codec interface {
	Decode(path string) (*apitype.PixelBuffer, error)
	Encode(buffer *apitype.PixelBuffer, path string) error
}

type DirectoryProvisioner interface {
	EnsureDir(path string) error
}
