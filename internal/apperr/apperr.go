// Package apperr holds the error kinds shared by every feature package.
//
// Feature packages wrap these sentinels (for example
// fmt.Errorf("book %w", apperr.ErrNotFound)) so callers can branch with
// errors.Is without importing the feature that produced the error.
package apperr

import "errors"

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is returned for blank ids and rejected field values.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUpstream is returned when the metadata lookup fails.
	ErrUpstream = errors.New("upstream failure")
	// ErrAlreadyExists is returned when a library or wishlist entry is added twice.
	ErrAlreadyExists = errors.New("already exists")
)

// Kind reports which sentinel err wraps, or nil when it wraps none of them.
func Kind(err error) error {
	for _, k := range []error{ErrNotFound, ErrInvalidArgument, ErrUpstream, ErrAlreadyExists} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
