package apperror

var (
	ErrPermissionRequired = New(
		CodePermissionRequired,
		"Location access is required to check in. Please enable location services in Settings.",
	)

	ErrLocationUnavailable = New(
		CodeLocationUnavailable,
		"Location request timed out. Please try again.",
	)

	ErrNotSignedIn = New(
		CodeUnauthorized,
		"You must be signed in to perform this action",
	)

	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
	)
)
