package httputils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"boscoin.io/ballot/lib/errors"
)

const (
	ProblemContentType     = "application/problem+json"
	ProblemTypeAboutBlank  = "about:blank"
	ProblemTypeErrorPrefix = "https://boscoin.io/ballot/errors/"
)

// Problem follows RFC 7807, "Problem Details for HTTP APIs".
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

func NewStatusProblem(status int) Problem {
	return Problem{
		Type:   ProblemTypeAboutBlank,
		Title:  http.StatusText(status),
		Status: status,
	}
}

func NewDetailedStatusProblem(status int, detail string) Problem {
	p := NewStatusProblem(status)
	p.Detail = detail
	return p
}

func (p Problem) SetInstance(instance string) Problem {
	p.Instance = instance
	return p
}

func (p Problem) SetDetail(detail string) Problem {
	p.Detail = detail
	return p
}

func (p Problem) Serialize() ([]byte, error) {
	return json.Marshal(p)
}

// ErrorProblem is a `Problem` which also carries the code and the message
// of `*errors.Error`, so clients can match the rejection kind.
type ErrorProblem struct {
	Problem
	Code    uint                   `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

func NewErrorProblem(err error, status int) ErrorProblem {
	e := errors.FromError(err)

	p := NewStatusProblem(status)
	p.Type = fmt.Sprintf("%s%d", ProblemTypeErrorPrefix, e.Code)
	p.Title = e.Message

	return ErrorProblem{
		Problem: p,
		Code:    e.Code,
		Message: e.Message,
		Data:    e.Data,
	}
}

func (p ErrorProblem) Serialize() ([]byte, error) {
	return json.Marshal(p)
}
