package domain

import "fmt"

// Result is the soft failure channel. It carries an expected, user-correctable
// rejection (scheduling conflicts, missing target on update/delete) that the
// caller displays inline instead of treating as an error.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// OK returns a successful result
func OK() *Result {
	return &Result{Success: true}
}

// Fail returns a failed result with a formatted message
func Fail(format string, args ...any) *Result {
	return &Result{Success: false, Message: fmt.Sprintf(format, args...)}
}

// ResultOf is a Result that also carries the accepted entity.
// Value is nil whenever Success is false.
type ResultOf[T any] struct {
	Result
	Value *T `json:"value,omitempty"`
}

// Accepted wraps an accepted entity
func Accepted[T any](v *T) *ResultOf[T] {
	return &ResultOf[T]{Result: Result{Success: true}, Value: v}
}

// Rejected converts a failed Result into a typed one
func Rejected[T any](r *Result) *ResultOf[T] {
	return &ResultOf[T]{Result: *r}
}

// RejectedMsg builds a failed typed result from a formatted message
func RejectedMsg[T any](format string, args ...any) *ResultOf[T] {
	return Rejected[T](Fail(format, args...))
}
