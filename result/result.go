/*
Package result implements a type for the outcome of a computation which may fail.

A Result either holds a value (Ok) or an error (Err). It is pattern-matched the same
way as package maybe's optional values:

    switch r := dict.Fetch("Galaxy").Match(); r {
    case r.Ok(&v):
        …
    case r.Err(&err):
        …
    }

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package result

// Result is the outcome of a computation producing a T or an error.
type Result[T any] interface {
	Match() Matcher[T]
	Get() (T, error)
	IsOk() bool
}

type result[T any] struct {
	value T
	err   error
}

// Ok wraps a successful outcome.
func Ok[T any](x T) Result[T] {
	return result[T]{value: x}
}

// Err wraps a failure. err must not be nil.
func Err[T any](err error) Result[T] {
	if err == nil {
		panic("result: Err called with nil error")
	}
	return result[T]{err: err}
}

// Of converts a conventional (value, error) return into a Result.
func Of[T any](x T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(x)
}

func (r result[T]) Match() Matcher[T] {
	return matcher[T]{r: r}
}

func (r result[T]) Get() (T, error) {
	return r.value, r.err
}

func (r result[T]) IsOk() bool {
	return r.err == nil
}

// --- Matching --------------------------------------------------------------

// Matcher supports pattern-matching of Results in switch statements.
type Matcher[T any] interface {
	Ok(*T) Matcher[T]
	Err(*error) Matcher[T]
}

type matcher[T any] struct {
	r result[T]
}

func (rm matcher[T]) Ok(v *T) Matcher[T] {
	if rm.r.err == nil {
		*v = rm.r.value
		return rm
	}
	return nil
}

func (rm matcher[T]) Err(err *error) Matcher[T] {
	if rm.r.err != nil {
		*err = rm.r.err
		return rm
	}
	return nil
}
