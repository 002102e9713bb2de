// Package rejection defines the categories a contract request can be rejected with. Components
// declare their own specific errors by wrapping one of these, so callers can classify any
// returned error with errors.Is or Category.
package rejection

import (
	"github.com/pkg/errors"
)

var (
	// ErrConfiguration is an invalid key type at initialization or rotation, or corrupted or
	// missing contract state.
	ErrConfiguration = errors.New("Configuration error")

	// ErrAuthorization is a non-admin attempting a privileged operation.
	ErrAuthorization = errors.New("Unauthorized")

	// ErrVerification is a bad signature or malformed key/signature bytes.
	ErrVerification = errors.New("Verification failed")

	// ErrUnsupportedKeyType is a recognized key type with no active verifier.
	ErrUnsupportedKeyType = errors.New("Unsupported key type")

	// ErrValidation is a request that fails input validation.
	ErrValidation = errors.New("Validation error")
)

// Category values.
const (
	CategoryNone = iota
	CategoryConfiguration
	CategoryAuthorization
	CategoryVerification
	CategoryUnsupportedKeyType
	CategoryValidation
)

// Category returns which rejection category err belongs to, or CategoryNone when it is not a
// rejection (for example a storage failure).
func Category(err error) int {
	switch {
	case err == nil:
		return CategoryNone
	case errors.Is(err, ErrConfiguration):
		return CategoryConfiguration
	case errors.Is(err, ErrAuthorization):
		return CategoryAuthorization
	case errors.Is(err, ErrVerification):
		return CategoryVerification
	case errors.Is(err, ErrUnsupportedKeyType):
		return CategoryUnsupportedKeyType
	case errors.Is(err, ErrValidation):
		return CategoryValidation
	}

	return CategoryNone
}

// CategoryName returns the display name of a category.
func CategoryName(category int) string {
	switch category {
	case CategoryConfiguration:
		return "ConfigurationError"
	case CategoryAuthorization:
		return "AuthorizationError"
	case CategoryVerification:
		return "VerificationError"
	case CategoryUnsupportedKeyType:
		return "UnsupportedKeyType"
	case CategoryValidation:
		return "ValidationError"
	}

	return "Error"
}

// IsRejection returns true when err belongs to one of the rejection categories.
func IsRejection(err error) bool {
	return Category(err) != CategoryNone
}
