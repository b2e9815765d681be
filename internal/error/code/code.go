package code

// HTTP status codes.
const (
	// StatusOK - 200: success.
	StatusOK = 200
	// StatusBadRequest - 400: bad request parameters.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: unauthorized.
	StatusUnauthorized = 401
	// StatusForbidden - 403: forbidden.
	StatusForbidden = 403
	// StatusNotFound - 404: resource not found.
	StatusNotFound = 404
	// StatusInternalServerError - 500: internal server error.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: too many requests.
	StatusTooManyRequests = 429
)

// Common error codes (100xxx).
const (
	// ErrSuccess - 200: success.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: unknown error.
	ErrUnknown
	// ErrBind - 400: request body binding error.
	ErrBind
	// ErrValidation - 400: request validation error.
	ErrValidation
	// ErrTokenInvalid - 401: invalid token.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: request rate too high.
	ErrTooManyRequests
)

// User error codes (101xxx).
const (
	// ErrUserNotFound - 404: user not found.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 400: user already exists.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: incorrect password.
	ErrUserPasswordIncorrect
)

// Sensor error codes (102xxx).
const (
	// ErrSensorNotFound - 404: sensor not found.
	ErrSensorNotFound int = iota + 102000
	// ErrSensorAlreadyExist - 400: sensor already exists.
	ErrSensorAlreadyExist
	// ErrReadingInvalid - 400: sensor reading rejected.
	ErrReadingInvalid
)

// Complaint error codes (103xxx).
const (
	// ErrComplaintNotFound - 404: complaint not found.
	ErrComplaintNotFound int = iota + 103000
	// ErrComplaintTransition - 400: illegal complaint status transition.
	ErrComplaintTransition
	// ErrPhotoUpload - 500: complaint photo upload failed.
	ErrPhotoUpload
)

// Alert error codes (104xxx).
const (
	// ErrAlertNotFound - 404: alert not found.
	ErrAlertNotFound int = iota + 104000
	// ErrAlertAlreadyResolved - 400: alert already resolved.
	ErrAlertAlreadyResolved
)

// Maintenance task error codes (105xxx).
const (
	// ErrTaskNotFound - 404: maintenance task not found.
	ErrTaskNotFound int = iota + 105000
	// ErrTaskTransition - 400: illegal task status transition.
	ErrTaskTransition
)

// Database error codes (106xxx).
const (
	// ErrDatabase - 500: database error.
	ErrDatabase int = iota + 106000
	// ErrRecordNotFound - 404: record not found.
	ErrRecordNotFound
)
