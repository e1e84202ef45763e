package vehicle

import "errors"

// ErrInvalidState indicates a state with NaN/Inf fields or a negative frame.
var ErrInvalidState = errors.New("vehicle: invalid state (NaN, Inf or negative frame)")
