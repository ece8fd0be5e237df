package fileinfo

import "errors"

var (
	// ErrUnknownEncoding indicates an encoding name could not be resolved.
	ErrUnknownEncoding = errors.New("unknown encoding")
)
