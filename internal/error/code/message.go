package code

// Error code to message mapping.
var codeMessageMap = map[int]string{
	// Common
	ErrSuccess:         "success",
	ErrUnknown:         "unknown error",
	ErrBind:            "failed to bind request parameters",
	ErrValidation:      "request validation failed",
	ErrTokenInvalid:    "invalid authentication token",
	ErrTooManyRequests: "request rate too high",

	// User
	ErrUserNotFound:          "user not found",
	ErrUserAlreadyExist:      "user already exists",
	ErrUserPasswordIncorrect: "incorrect password",

	// Sensor
	ErrSensorNotFound:     "sensor not found",
	ErrSensorAlreadyExist: "sensor already exists",
	ErrReadingInvalid:     "sensor reading rejected",

	// Complaint
	ErrComplaintNotFound:   "complaint not found",
	ErrComplaintTransition: "illegal complaint status transition",
	ErrPhotoUpload:         "complaint photo upload failed",

	// Alert
	ErrAlertNotFound:        "alert not found",
	ErrAlertAlreadyResolved: "alert already resolved",

	// Maintenance task
	ErrTaskNotFound:   "maintenance task not found",
	ErrTaskTransition: "illegal task status transition",

	// Database
	ErrDatabase:       "database error",
	ErrRecordNotFound: "record not found",
}

// Error code to HTTP status mapping.
var codeStatusMap = map[int]int{
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,

	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,

	ErrSensorNotFound:     StatusNotFound,
	ErrSensorAlreadyExist: StatusBadRequest,
	ErrReadingInvalid:     StatusBadRequest,

	ErrComplaintNotFound:   StatusNotFound,
	ErrComplaintTransition: StatusBadRequest,
	ErrPhotoUpload:         StatusInternalServerError,

	ErrAlertNotFound:        StatusNotFound,
	ErrAlertAlreadyResolved: StatusBadRequest,

	ErrTaskNotFound:   StatusNotFound,
	ErrTaskTransition: StatusBadRequest,

	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage returns the message for an error code.
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "unknown error"
}

// GetStatus returns the HTTP status for an error code.
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
