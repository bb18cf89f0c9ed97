package engine

import "errors"

// ErrNoRenderer is returned when the engine is started or advanced before a
// renderer has been attached.
var ErrNoRenderer = errors.New("engine: no renderer attached")
