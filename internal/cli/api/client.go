package api

import (
	"context"

	"github.com/yndnr/ota-go/internal/cli/connection"
	"github.com/yndnr/ota-go/internal/cli/output"
	"github.com/yndnr/ota-go/internal/core/domain"
)

// Doer sends a request to one of the services.
type Doer interface {
	Do(ctx context.Context, svc domain.Service, r connection.Request) (*connection.Response, error)
}

// V1 is the path prefix of every endpoint.
const V1 = "api/v1/"

func rawResult(resp *connection.Response) output.Result {
	return &output.RawResult{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
	}
}

// tableResult pairs a successful response with its tabular view. Error
// responses are returned raw.
func tableResult(resp *connection.Response, rowsPath string, cols ...output.Column) output.Result {
	if resp.Failed() {
		return rawResult(resp)
	}
	return &output.TableResult{
		Table:      output.TableFromJSON(resp.Body, rowsPath, cols...),
		Raw:        resp.Body,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}
}
