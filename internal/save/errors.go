// Package save implements the persistence pipeline: a versioned envelope
// with an integrity digest over a canonical payload encoding, semantic
// validation with deterministic clamping, a linear migration chain, and a
// crash-safe staged file store with backup rotation.
package save

import "errors"

// Load failure categories. Callers branch with errors.Is; the store retries
// the backup slot on any of the decode/integrity categories before giving up.
var (
	ErrUnsupportedSchema  = errors.New("save: unsupported schema version")
	ErrIntegrityMismatch  = errors.New("save: integrity digest mismatch")
	ErrTuningMismatch     = errors.New("save: tuning hash mismatch")
	ErrDecodeFailed       = errors.New("save: decode failed")
	ErrInvariantViolation = errors.New("save: invariant violation")
	ErrNotFound           = errors.New("save: not found")
	ErrQuotaExceeded      = errors.New("save: storage quota exceeded")
	// ErrNotResumable marks a save whose RNG state cannot be recovered;
	// resuming it would silently break determinism.
	ErrNotResumable = errors.New("save: not safely resumable")
)
