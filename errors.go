package delta

import (
	"fmt"
)

// ErrMalformedPatch is wrapped by every error returned by ApplyChecked.
var ErrMalformedPatch = fmt.Errorf("malformed patch")

// PatchError reports a change whose shape does not fit the value it is
// applied to.
type PatchError struct {
	// Path is the dotted path of the offending entry. Empty for the root.
	Path   string
	Reason string
}

func (e *PatchError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %s", ErrMalformedPatch, e.Reason)
	}
	return fmt.Sprintf("%v at %s: %s", ErrMalformedPatch, e.Path, e.Reason)
}

func (e *PatchError) Unwrap() error {
	return ErrMalformedPatch
}
