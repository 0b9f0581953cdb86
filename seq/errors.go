package seq

import "errors"

// The error taxonomy shared by all algorithm packages. Validation runs
// before any table is filled or any score computed, and every validation
// error wraps exactly one of these sentinels so that callers can
// distinguish failure classes with errors.Is.
var (
	// ErrAlphabetMismatch reports a residue outside its declared
	// alphabet, or two inputs whose alphabets disagree.
	ErrAlphabetMismatch = errors.New("alphabet mismatch")

	// ErrLengthMismatch reports an input whose length disagrees with the
	// fixed width an operation requires.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrEmptyInput reports an empty sequence or collection where a
	// non-empty one is required.
	ErrEmptyInput = errors.New("empty input")
)
