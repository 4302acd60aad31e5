// Package transport defines the boundary between the dispatcher and a
// multiplexed transport implementation. One Conn carries many independent
// request/response streams; the wire framing below it is the transport
// library's business.
package transport

import (
	"context"

	"github.com/freekieb7/cobble/body"
	"github.com/freekieb7/cobble/http"
)

// Request is the inbound head of one accepted stream, plus its payload.
type Request struct {
	Method string
	Path   string
	Proto  string
	Header http.Header
	Body   body.Body
}

// Conn is one multiplexed connection. Accept must only ever be called from
// a single goroutine; it is the sole operation that mutates the connection.
type Conn interface {
	// Accept blocks until the peer opens the next stream. It returns io.EOF
	// once the peer will open no more streams; any other error is fatal for
	// the whole connection.
	Accept(ctx context.Context) (*Request, Stream, error)
}

// Stream is the send side of one accepted stream. Each Stream is owned by
// exactly one goroutine for its whole lifetime, so implementations need no
// locking on the send path.
//
// Flow-control credit is advisory: it can shrink to zero or be revoked by
// a peer reset at any time. Grants are delivered in the order they were
// reserved on one stream, independently of other streams.
type Stream interface {
	// SendHead transmits the prepared response head. eof declares that no
	// body follows, ending the stream together with the head.
	SendHead(head *http.ResponseHead, eof bool) error

	// ReserveCapacity registers the intent to send up to n more bytes.
	ReserveCapacity(n int)

	// Capacity blocks until previously reserved credit is granted and
	// returns how many bytes may be sent now. A return of 0 with a nil
	// error means the peer closed the stream: nothing more can be sent and
	// the response ends early without an end-of-stream frame.
	Capacity(ctx context.Context) (int, error)

	// SendData transmits one data frame. endStream marks the final frame
	// of the response.
	SendData(p []byte, endStream bool) error
}
