// Package http holds the message types exchanged between the application
// handler and the multiplexed transport dispatcher.
package http

import "context"

// Protocol versions stamped on prepared response heads.
const (
	Proto2 = "HTTP/2.0"
	Proto3 = "HTTP/3.0"
)

// Handler produces the response for one request. Returning an error makes
// the dispatcher reply with the mapped error response instead, see
// ResponseFromError.
type Handler func(ctx context.Context, req *Request) (*Response, error)
