package htmlwasher

import "errors"

var (
	// ErrNilReader is returned by WashReader when it is given no reader.
	ErrNilReader = errors.New("htmlwasher: nil reader")
)
