package ratelimit

// ValidationError is raised at configuration time or strategy-construction
// time for a non-positive or otherwise malformed parameter. Its message is
// always a fixed string generated by the core, so it is safe to surface
// directly to a client (e.g. as an HTTP 400 body).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
