package api

// NewError builds an ErrorResponse without detail.
func NewError(code ErrorCode, message string) ErrorResponse {
	return ErrorResponse{Message: message, Code: code}
}

// NewErrorWithDetail builds an ErrorResponse carrying a detail string.
// Only pass detail that is safe to show to clients (binding errors, validation messages).
func NewErrorWithDetail(code ErrorCode, message, detail string) ErrorResponse {
	return ErrorResponse{Message: message, Error: detail, Code: code}
}
