package service

import (
	"errors"
	"fmt"
)

const (
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
	// ErrEntityNotFound means that record or row is absent in repository or storage.
	ErrEntityNotFound = "entity_not_found"
	// ErrBadParameter means that provided parameter does not match declared.
	ErrBadParameter = "bad_parameter"
	// ErrRegistryUnavailable means the discovery registry could not be reached. Retryable by caller policy.
	ErrRegistryUnavailable = "registry_unavailable"
	// ErrServiceUnavailable means the registry answered but the service has no live instances.
	ErrServiceUnavailable = "service_unavailable"
	// ErrInvalidInstanceMetadata means the selected instance does not publish a usable streaming port.
	ErrInvalidInstanceMetadata = "invalid_instance_metadata"
	// ErrConnectionFailed means the transport connection could not be established or was lost.
	ErrConnectionFailed = "connection_failed"
	// ErrStreamTerminated means a backend stream failed after it had started.
	ErrStreamTerminated = "stream_terminated"
)

// MyError represents an error within the context of reactivemesh services.
type MyError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Service is the service name the error is about, when there is one.
	Service string `json:"service,omitempty"`
	// Key is the offending metadata key for invalid_instance_metadata.
	Key string `json:"key,omitempty"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

// NewMyError creates a new MyError.
func NewMyError(code string, message string, inner error) *MyError {
	return &MyError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

func NewInternalServerError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrInternalServerError, message, inner)
}

func NewEntityNotFoundError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrEntityNotFound, message, inner)
}

func NewBadParameterError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrBadParameter, message, inner)
}

// NewRegistryUnavailableError wraps a registry transport failure for the given lookup.
func NewRegistryUnavailableError(serviceName string, inner error) *MyError {
	e := NewMyError(ErrRegistryUnavailable, "discovery registry is unavailable", inner)
	e.Service = serviceName
	return e
}

// NewServiceUnavailableError reports that serviceName has zero live instances.
func NewServiceUnavailableError(serviceName string) *MyError {
	e := NewMyError(ErrServiceUnavailable, fmt.Sprintf("no live instance of %s", serviceName), nil)
	e.Service = serviceName
	return e
}

// NewInvalidInstanceMetadataError reports a missing or malformed metadata entry key on an instance of serviceName.
func NewInvalidInstanceMetadataError(serviceName, key string, inner error) *MyError {
	e := NewMyError(ErrInvalidInstanceMetadata, fmt.Sprintf("instance of %s has no valid %q metadata", serviceName, key), inner)
	e.Service = serviceName
	e.Key = key
	return e
}

// NewConnectionFailedError reports a transport connect or keepalive failure towards serviceName.
func NewConnectionFailedError(serviceName string, cause error) *MyError {
	e := NewMyError(ErrConnectionFailed, fmt.Sprintf("connection to %s failed", serviceName), cause)
	e.Service = serviceName
	return e
}

// NewStreamTerminatedError reports a failure of an already started stream from serviceName.
func NewStreamTerminatedError(serviceName string, cause error) *MyError {
	e := NewMyError(ErrStreamTerminated, fmt.Sprintf("stream from %s terminated", serviceName), cause)
	e.Service = serviceName
	return e
}

func (e MyError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}

	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e MyError) Unwrap() error {
	return e.Inner
}

// ToMyError returns a pointer to a reactivemesh error, or nil if it is not one.
func ToMyError(err error) *MyError {
	var e *MyError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ToMyErrorCode returns the code of the error, if available.
func ToMyErrorCode(err error) string {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code
	}
	return ""
}

func IsMyError(err error, code string) bool {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code == code
	}
	return false
}

func IsInternalServerError(err error) bool {
	return IsMyError(err, ErrInternalServerError)
}

func IsEntityNotFoundError(err error) bool {
	return IsMyError(err, ErrEntityNotFound)
}

func IsBadParameterError(err error) bool {
	return IsMyError(err, ErrBadParameter)
}

func IsRegistryUnavailableError(err error) bool {
	return IsMyError(err, ErrRegistryUnavailable)
}

func IsServiceUnavailableError(err error) bool {
	return IsMyError(err, ErrServiceUnavailable)
}

func IsInvalidInstanceMetadataError(err error) bool {
	return IsMyError(err, ErrInvalidInstanceMetadata)
}

func IsConnectionFailedError(err error) bool {
	return IsMyError(err, ErrConnectionFailed)
}

func IsStreamTerminatedError(err error) bool {
	return IsMyError(err, ErrStreamTerminated)
}
