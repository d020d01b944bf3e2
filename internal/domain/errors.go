package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCategory is one of the closed set of client-visible error classes.
type ErrorCategory int

// Error categories. The numeric values are the stable error codes written
// to the response body.
const (
	InvalidJSONFormat         ErrorCategory = 2000
	MissingParameter          ErrorCategory = 2001
	InvalidParameterFormat    ErrorCategory = 2002
	InvalidParameterValue     ErrorCategory = 2003
	RequestExceedsServerLimit ErrorCategory = 2004
	Unknown                   ErrorCategory = 2099
)

// String returns the category name.
func (c ErrorCategory) String() string {
	switch c {
	case InvalidJSONFormat:
		return "InvalidJsonFormat"
	case MissingParameter:
		return "MissingParameter"
	case InvalidParameterFormat:
		return "InvalidParameterFormat"
	case InvalidParameterValue:
		return "InvalidParameterValue"
	case RequestExceedsServerLimit:
		return "RequestExceedsServerLimit"
	default:
		return "Unknown"
	}
}

// RoutingError is the single error returned for a failed directions request.
// Validation stops at the first violation, so a request yields at most one.
type RoutingError struct {
	Category ErrorCategory
	Message  string
	// Err is the underlying cause. It is logged but never sent to clients.
	Err error
}

// Error implements the error interface.
func (e *RoutingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *RoutingError) Unwrap() error {
	return e.Err
}

// Code returns the stable numeric error code.
func (e *RoutingError) Code() int {
	return int(e.Category)
}

// HTTPStatus returns 500 for Unknown and 400 for every other category.
func (e *RoutingError) HTTPStatus() int {
	if e.Category == Unknown {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// NewInvalidJSONFormat reports a malformed nested structure.
func NewInvalidJSONFormat(param string, err error) *RoutingError {
	return &RoutingError{
		Category: InvalidJSONFormat,
		Message:  fmt.Sprintf("Unable to parse JSON document of parameter '%s'.", param),
		Err:      err,
	}
}

// NewMissingParameter reports an absent required parameter.
func NewMissingParameter(param string) *RoutingError {
	return &RoutingError{
		Category: MissingParameter,
		Message:  fmt.Sprintf("Parameter '%s' is missing.", param),
	}
}

// NewInvalidParameterFormat reports a lexically malformed parameter.
func NewInvalidParameterFormat(param string, err error) *RoutingError {
	return &RoutingError{
		Category: InvalidParameterFormat,
		Message:  fmt.Sprintf("Parameter '%s' has incorrect format.", param),
		Err:      err,
	}
}

// NewInvalidParameterValue reports a well-formed but illegal value.
func NewInvalidParameterValue(param, value string) *RoutingError {
	msg := fmt.Sprintf("Parameter '%s' has incorrect value.", param)
	if value != "" {
		msg = fmt.Sprintf("Parameter '%s' has incorrect value of '%s'.", param, value)
	}
	return &RoutingError{Category: InvalidParameterValue, Message: msg}
}

// NewServerLimitExceeded reports a valid request that exceeds a configured bound.
func NewServerLimitExceeded(message string) *RoutingError {
	return &RoutingError{Category: RequestExceedsServerLimit, Message: message}
}

// NewUnknown wraps a failure that has no more specific category.
func NewUnknown(err error) *RoutingError {
	return &RoutingError{
		Category: Unknown,
		Message:  "Unable to compute a route.",
		Err:      err,
	}
}

// AsRoutingError returns err as a *RoutingError, classifying anything
// unrecognized as Unknown. It returns nil for a nil error.
func AsRoutingError(err error) *RoutingError {
	if err == nil {
		return nil
	}
	var rerr *RoutingError
	if errors.As(err, &rerr) {
		return rerr
	}
	return NewUnknown(err)
}
