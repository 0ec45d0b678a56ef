// Package sky holds definitions shared by the sky dome packages.
//
// The dome, composite and placement subpackages are pure: they allocate,
// compute and return, never log and never touch the GPU. Per-fragment work
// has no error states; only construction-time validation fails, and every
// such failure wraps ErrInvalidArgument.
package sky

import "errors"

// ErrInvalidArgument reports a parameter that cannot produce valid geometry
// or a valid transform.
var ErrInvalidArgument = errors.New("invalid argument")
