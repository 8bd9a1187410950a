package delta

import (
	"github.com/brunoga/delta/internal/core"
)

// Copy returns a deep copy of v. Lists and maps shared within v are shared in
// the copy as well, so cyclic values are supported.
func Copy(v any) any {
	return core.Copy(v)
}

// Normalize converts an arbitrary Go value (structs, typed maps and slices,
// pointers) into plain values suitable for Diff and Apply. Struct fields
// follow their json tags; a `delta:"-"` tag skips the field.
func Normalize(v any) (any, error) {
	return core.Normalize(v)
}
