package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for wizard input that the HTTP layer maps to client errors.
var (
	ErrUnknownField   = errors.New("unknown form field")
	ErrFieldType      = errors.New("wrong value type for form field")
	ErrNotMultiSelect = errors.New("field is not a multi-select field")
	ErrNotAttachment  = errors.New("field does not hold a file attachment")
	ErrUnknownOption  = errors.New("value is not an option of this field")
	ErrWizardNotFound = errors.New("onboarding session not found or expired")
	ErrUploadTooLarge = errors.New("uploaded file is too large")
	ErrNotImage       = errors.New("file is not an image")
	ErrNotFound       = errors.New("requested resource not found")
)
