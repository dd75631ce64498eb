// Package connection sends requests to the fleet services.
//
//   - http.go: the request pipeline that attaches identity headers, executes
//     the exchange and reads the full response
//   - request.go: builders for query, JSON and multipart requests
//   - manager.go: the per-invocation session holding the loaded
//     configuration, the token manager and the pipeline
//
// Requests are sent one at a time with the default transport policy. There
// are no retries.
package connection
