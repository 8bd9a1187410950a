package delta

import (
	"github.com/brunoga/delta/internal/core"
)

// Equal performs a deep equality check between a and b. Numbers compare by
// value across Go numeric types and cyclic values are supported.
func Equal(a, b any) bool {
	return core.Equal(a, b)
}
