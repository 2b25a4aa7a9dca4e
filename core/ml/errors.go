package ml

import "github.com/pkg/errors"

var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrLabelOutOfRange   = errors.New("label out of range")
)
