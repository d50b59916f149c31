package prediction

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the root of every validation failure raised by the
// predictor. Use errors.Is to check: errors.Is(err, prediction.ErrInvalidArgument).
var ErrInvalidArgument = errors.New("prediction: invalid argument")

var (
	ErrCycleLengthOutOfRange = fmt.Errorf("%w: cycle length out of range", ErrInvalidArgument)
	ErrCycleCountOutOfRange  = fmt.Errorf("%w: cycle count out of range", ErrInvalidArgument)
)
