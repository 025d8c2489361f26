// Package errors provides error types and handling for remote upload operations.
package errors

import (
	"errors"
	"fmt"
)

// Error represents a remote storage operation error with context about the operation that failed.
// It wraps the underlying provider SDK error with additional context for better debugging.
type Error struct {
	// Provider is the storage backend that produced the error (e.g., "s3", "minio", "azblob", "gcs")
	Provider string

	// Op is the operation that failed (e.g., "put")
	Op string

	// Bucket is the bucket or container name (if applicable)
	Bucket string

	// Key is the object key (if applicable)
	Key string

	// Code is the provider specific error code (e.g., "AccessDenied", "NoSuchBucket")
	Code string

	// Err is the underlying error from the provider SDK or other source
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	name := e.name()
	if e.Bucket != "" && e.Key != "" {
		return fmt.Sprintf("%s %s/%s: %v", name, e.Bucket, e.Key, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("%s bucket %s: %v", name, e.Bucket, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("%s object %s: %v", name, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %v", name, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether the provider error code classifies as the target sentinel.
func (e *Error) Is(target error) bool {
	if e.Code == "" {
		return false
	}
	sentinel, ok := sentinels[Classify(e.Code)]
	return ok && sentinel == target
}

// ErrorCode returns the provider independent classification of the error.
func (e *Error) ErrorCode() ErrorCode {
	return Classify(e.Code)
}

func (e *Error) name() string {
	provider := e.Provider
	if provider == "" {
		provider = "remote"
	}
	return provider + "." + e.Op
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithCode records the provider error code.
func (e *Error) WithCode(code string) *Error {
	e.Code = code
	return e
}

// WithProvider records the backend that produced the error.
func (e *Error) WithProvider(provider string) *Error {
	e.Provider = provider
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// NewObjectError creates a new Error with bucket and key context.
func NewObjectError(op, bucket, key string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}
}

// Sentinel errors for common remote upload failures.
// These can be used with errors.Is() for error checking.
var (
	// ErrBucketNotFound indicates that the target bucket or container does not exist
	ErrBucketNotFound = errors.New("remote: bucket not found")

	// ErrAccessDenied indicates that access to the resource is denied
	ErrAccessDenied = errors.New("remote: access denied")

	// ErrInvalidCredentials indicates that the credentials were rejected
	ErrInvalidCredentials = errors.New("remote: invalid credentials")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("remote: invalid input")

	// ErrTimeout indicates that the operation timed out
	ErrTimeout = errors.New("remote: operation timeout")

	// ErrTooManyRequests indicates that the request rate is too high
	ErrTooManyRequests = errors.New("remote: too many requests")

	// ErrUnavailable indicates that the service could not handle the request
	ErrUnavailable = errors.New("remote: service unavailable")
)

var sentinels = map[ErrorCode]error{
	CodeNotFound:     ErrBucketNotFound,
	CodeForbidden:    ErrAccessDenied,
	CodeUnauthorized: ErrInvalidCredentials,
	CodeInvalidInput: ErrInvalidInput,
	CodeTimeout:      ErrTimeout,
	CodeRateLimit:    ErrTooManyRequests,
	CodeUnavailable:  ErrUnavailable,
}

// IsBucketNotFound checks if an error indicates that a bucket was not found.
func IsBucketNotFound(err error) bool {
	return errors.Is(err, ErrBucketNotFound)
}

// IsAccessDenied checks if an error indicates access was denied.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsInvalidCredentials checks if an error indicates the credentials were rejected.
func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

// Describe splits an error into the name, code and message shown to users
// when an upload fails. Errors that are not *Error are described by their
// dynamic type.
func Describe(err error) (name, code, message string) {
	if err == nil {
		return "", "", ""
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Err != nil {
			message = e.Err.Error()
		}
		return e.name(), e.Code, message
	}
	return fmt.Sprintf("%T", err), "", err.Error()
}
