package changelog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Code classifies engine errors.
type Code string

// Error codes.
const (
	CodeNotFound                Code = "NOT_FOUND"
	CodePermissionDenied        Code = "PERMISSION_DENIED"
	CodeInvalidArgument         Code = "INVALID_ARGUMENT"
	CodePartialComponentFailure Code = "PARTIAL_COMPONENT_FAILURE"
	CodeCancelled               Code = "CANCELLED"
	CodeInternal                Code = "INTERNAL"
)

// Error is the error type returned by the engine. Details carries the
// identifiers involved so callers can diagnose without re-querying.
type Error struct {
	Code    Code
	Message string
	Details map[string]string
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound         = &Error{Code: CodeNotFound}
	ErrPermissionDenied = &Error{Code: CodePermissionDenied}
	ErrInvalidArgument  = &Error{Code: CodeInvalidArgument}
	ErrCancelled        = &Error{Code: CodeCancelled}
)

func (e *Error) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+e.Details[k])
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, strings.Join(pairs, ", "))
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func newError(code Code, details map[string]string, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Details: details}
}

// NotFound builds a NotFound error for a missing entity.
func NotFound(kind, id string) *Error {
	return newError(CodeNotFound, map[string]string{kind: id}, "%s %s not found", kind, id)
}

// CodeOf returns the code of the first *Error in err's chain, CodeInternal otherwise.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// cancelled converts context errors into Cancelled errors and returns other
// errors unchanged.
func cancelled(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return newError(CodeCancelled, nil, "changelog computation aborted: %v", ctxErr)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return newError(CodeCancelled, nil, "changelog computation aborted: %v", err)
	}
	return err
}
