// Package httpx adapts handlers that return errors to net/http, so transport
// failures are reported in one place.
// See https://blog.questionable.services/article/http-handler-error-handling-revisited/.
package httpx

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-json-experiment/json"
)

// Error returns an error with an associated HTTP status code.
func Error(code int, err error) error {
	return &StatusError{code, err}
}

// StatusError represents an error with an associated HTTP status code.
type StatusError struct {
	Code int
	Err  error
}

func (se *StatusError) Error() string {
	return se.Err.Error()
}

// Status returns the HTTP status code.
func (se *StatusError) Status() int {
	return se.Code
}

// HandlerFunc adapts a function that returns an error to an http.HandlerFunc.
func HandlerFunc[E any](envFn func(r *http.Request) *E, fn func(*E, http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		env := envFn(r)
		err := fn(env, w, r)
		if err != nil {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			code := http.StatusInternalServerError
			if se := new(StatusError); errors.As(err, &se) {
				code = se.Status()
			}
			log.Error("http", "method", r.Method, "path", r.URL.Path, "status", code, "err", err)
			w.WriteHeader(code)
			json.MarshalFull(w, map[string]any{
				"error": err.Error(),
			})
		}
	}
}
