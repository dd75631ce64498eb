package output

import (
	"net/http"

	"github.com/yndnr/ota-go/internal/core/domain"
)

// Result is the outcome of a command. It is one of TableResult, RawResult
// or EmptyResult.
type Result interface {
	isResult()
}

// TableResult is a response that also has a tabular view.
type TableResult struct {
	Table      *Table
	Raw        []byte
	StatusCode int
	Header     http.Header
}

// RawResult is a response rendered as-is.
type RawResult struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// EmptyResult is a command with nothing to print.
type EmptyResult struct{}

func (*TableResult) isResult() {}
func (*RawResult) isResult()   {}
func (EmptyResult) isResult()  {}

// StatusError returns an HTTP status error when r carries a status of 400
// or above.
func StatusError(r Result) error {
	var code int
	switch v := r.(type) {
	case *TableResult:
		code = v.StatusCode
	case *RawResult:
		code = v.StatusCode
	}
	if code >= 400 {
		return domain.ErrHTTPStatus.WithDetailsf("server returned %d %s", code, http.StatusText(code))
	}
	return nil
}
