package apperror

const (
	// Clock pipeline gates
	CodePermissionRequired  = "PERMISSION_REQUIRED"
	CodeLocationUnavailable = "LOCATION_UNAVAILABLE"
	CodeOutsideRadius       = "OUTSIDE_RADIUS"

	// Remote collaborator
	CodeRemoteError = "REMOTE_ERROR"

	// Record decoding
	CodeParseError = "PARSE_ERROR"

	// Generic
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeConflict     = "CONFLICT"
	CodeNotFound     = "NOT_FOUND"
)
