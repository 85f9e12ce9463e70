package parser

import "fmt"

// InputError is returned when the value handed to ParseValue is not text.
type InputError struct {
	Value any
}

func (e *InputError) Error() string {
	return fmt.Sprintf("unsupported input type %T: expected text", e.Value)
}
