package service

import (
	"errors"
	"fmt"
	"strings"
)

var ErrWeldNotFound = errors.New("weld not found")

// FieldError is one failed rule on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// ValidationError collects every rule an input failed.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

// Messages renders each field error as "<field> <message>".
func (e *ValidationError) Messages() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, f.String())
	}
	return out
}

func (e *ValidationError) add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

func (e *ValidationError) addOnce(field, msg string) {
	for _, f := range e.Fields {
		if f.Field == field && f.Message == msg {
			return
		}
	}
	e.add(field, msg)
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
