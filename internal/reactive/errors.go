package reactive

import (
	"errors"
	"fmt"
	"runtime"
)

// CycleError is raised (as a panic) when a computation reads itself.
type CycleError struct {
	Name string
}

func (e *CycleError) Error() string {
	if e.Name == "" {
		return "circular dependency detected"
	}
	return fmt.Sprintf("circular dependency detected at %q", e.Name)
}

// IsCycleError reports whether err is or wraps a *CycleError.
func IsCycleError(err error) bool {
	var ce *CycleError
	return errors.As(err, &ce)
}

// Catch runs fn and converts a panic carrying an error into a returned
// error. Runtime errors and non-error panics are re-raised.
func Catch(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, ok := r.(runtime.Error); ok {
			panic(r)
		}
		e, ok := r.(error)
		if !ok {
			panic(r)
		}
		err = e
	}()
	fn()
	return nil
}
