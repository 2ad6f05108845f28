package devis

import "errors"

var (
	// ErrMissingName is returned when the name is missing or blank
	ErrMissingName = errors.New("name is required")

	// ErrMissingEmail is returned when the email is missing or blank
	ErrMissingEmail = errors.New("email is required")

	// ErrMissingProjectType is returned when the project type is missing or blank
	ErrMissingProjectType = errors.New("project type is required")

	// ErrMissingDescription is returned when the project description is missing or blank
	ErrMissingDescription = errors.New("project description is required")

	// ErrDescriptionTooShort is returned when the description is below the minimum length
	ErrDescriptionTooShort = errors.New("project description is too short")

	// ErrSubmissionNotFound is returned when a submission is not found
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrPersistFailed wraps store errors; it is the only pipeline failure
	// surfaced to the caller after validation passes.
	ErrPersistFailed = errors.New("submission could not be persisted")
)

// IsValidationError reports whether err is one of the request validation
// sentinels. Validation failures map to HTTP 400.
func IsValidationError(err error) bool {
	for _, sentinel := range []error{
		ErrMissingName,
		ErrMissingEmail,
		ErrMissingProjectType,
		ErrMissingDescription,
		ErrDescriptionTooShort,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
