package errs

import "errors"

// Machine-readable error kinds exposed to callers.
const (
	KindNotFound              = "NotFound"
	KindInvalidState          = "InvalidState"
	KindConflict              = "Conflict"
	KindStaffUnavailable      = "StaffUnavailable"
	KindIncompletePreparation = "IncompletePreparation"
	KindDeadlineExpired       = "DeadlineExpired"
	KindValidation            = "Validation"
	KindInternal              = "Internal"
)

// Kind classifies err into one of the Kind* constants.
// Optimistic-lock failures are reported as conflicts.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrIncompletePreparation):
		return KindIncompletePreparation
	case errors.Is(err, ErrDeadlineExpired):
		return KindDeadlineExpired
	case errors.Is(err, ErrStaffUnavailable):
		return KindStaffUnavailable
	case errors.Is(err, ErrConflict), errors.Is(err, ErrVersionIsInvalid):
		return KindConflict
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange),
		errors.Is(err, ErrValueIsRequired):
		return KindValidation
	default:
		return KindInternal
	}
}
