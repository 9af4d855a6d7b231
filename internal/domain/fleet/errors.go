package fleet

// ValidationError reports a car draft field that failed validation. The
// message is user-facing.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
