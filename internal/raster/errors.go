package raster

import "errors"

// ErrNoFrames indicates an attempt to encode an empty recording.
var ErrNoFrames = errors.New("raster: no frames captured")
