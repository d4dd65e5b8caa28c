package models

// Unit is the payload of operations that succeed without a value
type Unit = struct{}

// Result is either a success carrying a value or a failure carrying a DataError.
// Build one with Success or Failure; the two states never coexist.
type Result[T any] struct {
	value T
	err   DataError
}

// Success wraps a value
func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failure wraps a classified error. A nil err is treated as LocalUnknown.
func Failure[T any](err DataError) Result[T] {
	if err == nil {
		err = LocalUnknown
	}
	return Result[T]{err: err}
}

// IsSuccess reports whether r holds a value
func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

// Value returns the success value, or the zero value for a failure
func (r Result[T]) Value() T {
	return r.value
}

// Error returns the failure, or nil for a success
func (r Result[T]) Error() DataError {
	return r.err
}

// OnSuccess calls fn with the value if r is a success
func (r Result[T]) OnSuccess(fn func(T)) Result[T] {
	if r.err == nil {
		fn(r.value)
	}
	return r
}

// OnError calls fn with the error if r is a failure
func (r Result[T]) OnError(fn func(DataError)) Result[T] {
	if r.err != nil {
		fn(r.err)
	}
	return r
}
