package errors

import "strings"

// ErrorCode classifies a remote upload failure independently of the storage provider.
// Error codes are string-based for debuggability and natural JSON serialization.
type ErrorCode string

const (
	// Resource errors.

	// CodeNotFound indicates the target bucket or container does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// Permission errors.

	// CodeUnauthorized indicates the credentials were rejected by the provider.
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// CodeForbidden indicates the credentials lack permission for the operation.
	CodeForbidden ErrorCode = "FORBIDDEN"

	// Validation errors.

	// CodeInvalidInput indicates the provided input is invalid or malformed.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Infrastructure errors.

	// CodeNetwork indicates a network operation failed.
	CodeNetwork ErrorCode = "NETWORK_ERROR"

	// CodeTimeout indicates an operation exceeded its time limit.
	CodeTimeout ErrorCode = "TIMEOUT"

	// CodeRateLimit indicates the provider throttled the request.
	CodeRateLimit ErrorCode = "RATE_LIMIT_EXCEEDED"

	// CodeUnavailable indicates the service is temporarily unavailable.
	CodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// Generic errors.

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)

// providerCodes maps provider specific error codes (S3, OSS, MinIO, Azure, GCS)
// onto ErrorCode values. Keys are lower-cased.
var providerCodes = map[string]ErrorCode{
	"nosuchbucket":          CodeNotFound,
	"containernotfound":     CodeNotFound,
	"notfound":              CodeNotFound,
	"404":                   CodeNotFound,
	"invalidaccesskeyid":    CodeUnauthorized,
	"signaturedoesnotmatch": CodeUnauthorized,
	"authenticationfailed":  CodeUnauthorized,
	"expiredtoken":          CodeUnauthorized,
	"401":                   CodeUnauthorized,
	"accessdenied":          CodeForbidden,
	"authorizationfailure":  CodeForbidden,
	"forbidden":             CodeForbidden,
	"403":                   CodeForbidden,
	"invalidbucketname":     CodeInvalidInput,
	"invalidobjectname":     CodeInvalidInput,
	"keytoolongerror":       CodeInvalidInput,
	"invalid":               CodeInvalidInput,
	"400":                   CodeInvalidInput,
	"requesttimeout":        CodeTimeout,
	"operationtimedout":     CodeTimeout,
	"408":                   CodeTimeout,
	"slowdown":              CodeRateLimit,
	"toomanyrequests":       CodeRateLimit,
	"serverbusy":            CodeRateLimit,
	"ratelimitexceeded":     CodeRateLimit,
	"429":                   CodeRateLimit,
	"serviceunavailable":    CodeUnavailable,
	"internalerror":         CodeUnavailable,
	"500":                   CodeUnavailable,
	"503":                   CodeUnavailable,
}

// Classify maps a provider error code onto an ErrorCode.
// Unrecognized codes yield CodeUnknown.
func Classify(providerCode string) ErrorCode {
	if code, ok := providerCodes[strings.ToLower(providerCode)]; ok {
		return code
	}
	return CodeUnknown
}
