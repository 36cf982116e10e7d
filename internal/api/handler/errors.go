package handler

// ValidationError reports a request whose body or query does not match the expected
// shape. Fields maps each failing field path to its messages.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidPayload(err error) *ValidationError {
	return &ValidationError{
		Message: "invalid payload",
		Fields:  map[string][]string{"body": {err.Error()}},
	}
}
