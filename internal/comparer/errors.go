package comparer

import (
	"errors"
	"fmt"
)

// ErrInvariantBroken is wrapped by the panics raised when a caller violates
// a precondition of the comparer, such as asking for the value of an
// unlabeled node. It signals a bug in the caller, not bad input.
var ErrInvariantBroken = errors.New("comparer invariant broken")

func invariantf(format string, args ...interface{}) {
	panic(fmt.Errorf("%w: %s", ErrInvariantBroken, fmt.Sprintf(format, args...)))
}
