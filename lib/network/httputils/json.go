package httputils

import (
	"encoding/json"
	"net/http"

	"github.com/nvellon/hal"
)

type HALResource interface {
	Resource() *hal.Resource
}

// WriteJSON writes the value v to the http response as json encoding.
// `HALResource` is written as `application/hal+json` and an error as a
// problem.
func WriteJSON(w http.ResponseWriter, code int, v interface{}) error {
	switch t := v.(type) {
	case HALResource:
		w.Header().Set("Content-Type", "application/hal+json")
		v = t.Resource()
	case ErrorProblem, Problem:
		w.Header().Set("Content-Type", ProblemContentType)
	case error:
		w.Header().Set("Content-Type", ProblemContentType)
		v = NewErrorProblem(t, code)
	default:
		w.Header().Set("Content-Type", "application/json")
	}

	bs, err := json.Marshal(v)
	if err != nil {
		return err
	}

	w.WriteHeader(code)
	if _, err := w.Write(bs); err != nil {
		return err
	}

	return nil
}

func MustWriteJSON(w http.ResponseWriter, code int, v interface{}) {
	if err := WriteJSON(w, code, v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func WriteJSONError(w http.ResponseWriter, err error) {
	code := StatusCode(err)
	MustWriteJSON(w, code, NewErrorProblem(err, code))
}
