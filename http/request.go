package http

import (
	"context"
	"net"

	"github.com/freekieb7/cobble/body"
)

// Request is one inbound exchange on a multiplexed connection.
type Request struct {
	Method   string
	Path     string
	Proto    string
	Header   Header
	PeerAddr net.Addr
	Body     body.Body

	ctx context.Context
}

// Context returns the request context. It carries the connection-scoped
// values established when the connection was accepted.
func (req *Request) Context() context.Context {
	if req.ctx != nil {
		return req.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of req with its context replaced.
func (req *Request) WithContext(ctx context.Context) *Request {
	r := *req
	r.ctx = ctx
	return &r
}
