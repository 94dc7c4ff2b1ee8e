package dto

// APIError is the JSON body of every failing response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes returned by the reconciliation API.
const (
	ErrCodeNotFound   = "not_found"
	ErrCodeBadRequest = "bad_request"
	ErrCodeInternal   = "internal_error"
	ErrCodeValidation = "validation_error"
)

// NotFoundError reports a missing resource.
func NotFoundError(resource string) APIError {
	return APIError{Code: ErrCodeNotFound, Message: resource + " not found"}
}

// BadRequestError reports a request the server could not parse.
func BadRequestError(message string) APIError {
	return APIError{Code: ErrCodeBadRequest, Message: message}
}

// ValidationError reports records or matching options the engine
// rejected. The message names the offending side, index or field.
func ValidationError(message string) APIError {
	return APIError{Code: ErrCodeValidation, Message: message}
}

// InternalError reports a server-side failure. The message states which
// step failed without leaking internals; details go to the log.
func InternalError(message string) APIError {
	if message == "" {
		message = "an internal error occurred"
	}
	return APIError{Code: ErrCodeInternal, Message: message}
}
