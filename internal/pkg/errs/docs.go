// Package errs provides standardized error types for the distribution service.
//
// Generic validation errors:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - ObjectNotFoundError for unknown identifiers
//   - VersionIsInvalidError for stale optimistic-lock versions
//
// Distribution errors, one per failure kind callers must tell apart:
//   - InvalidStateError: operation illegal for the current status
//   - ConflictError: concurrent mutation collision, e.g. double assignment
//   - StaffUnavailableError: courier availability or capacity check failed
//   - IncompletePreparationError: carries the ids of unprepared items
//   - DeadlineExpiredError: accept attempted after the deadline
//
// Each type pairs a sentinel (ErrXxx) with a struct carrying details and
// unwraps to the sentinel, so callers use errors.Is for classification and
// errors.As for the payload. Kind maps any error to a machine-readable name.
package errs
