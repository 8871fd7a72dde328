package lineitem

import (
	"errors"
	"fmt"
)

// ErrInvalidField is the sentinel every FieldError unwraps to.
var ErrInvalidField = errors.New("line item field failed validation")

type Rule string

const (
	RuleCharacterSet Rule = "charset"
	RuleLength       Rule = "length"
	RuleDecimal      Rule = "decimal"
	RuleSign         Rule = "sign"
	RuleAllowed      Rule = "allowed"
)

// FieldError names the wire key of the offending field and the rule it violated.
type FieldError struct {
	Field   string
	Rule    Rule
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidField
}

func newFieldError(field string, rule Rule, format string, v ...interface{}) *FieldError {
	return &FieldError{
		Field:   field,
		Rule:    rule,
		Message: fmt.Sprintf(format, v...),
	}
}

// AsFieldError returns the FieldError contained in err, or nil.
func AsFieldError(err error) *FieldError {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}
