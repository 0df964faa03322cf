package apitype

import "errors"

var (
	ErrInvalidSize      = errors.New("invalid size")
	ErrInvalidBound     = errors.New("invalid bound")
	ErrUnsupportedKind  = errors.New("unsupported interpolation kind")
	ErrUnsupportedDType = errors.New("unsupported dtype")
	ErrDecode           = errors.New("decode error")
	ErrEncode           = errors.New("encode error")
)
