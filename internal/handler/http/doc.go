// Package http implements the HTTP transport layer of the service.
//
// It exposes route wiring, the error envelope written for every failed
// request, and middleware for request tracing, access logging, metrics,
// panic recovery and CORS. Handlers return errors instead of writing error
// responses themselves; [Handler.Handle] turns them into envelopes.
package http
