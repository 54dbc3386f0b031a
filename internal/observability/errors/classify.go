// Package errors normalises errors into metric tag values.
package errors

import (
	goerrors "errors"
	"reflect"
	"strings"

	apperrors "github.com/squidword/squidword/internal/errors"
)

// Classify returns a low-cardinality label for err. Application errors are
// labelled by their code; anything else by the innermost concrete type name.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if code := apperrors.GetCode(err); code != "" {
		return string(code)
	}

	for {
		unwrapped := goerrors.Unwrap(err)
		if unwrapped == nil {
			break
		}
		err = unwrapped
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}
	name := strings.ToLower(strings.ReplaceAll(t.String(), ".", "_"))
	if name == "" {
		return "unknown"
	}
	return name
}
