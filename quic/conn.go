// Package quic binds a QUIC connection to the transport interfaces. Every
// exchange runs on its own bidirectional QUIC stream: the head travels as a
// plain-text block (request or status line, lowercase header lines, blank
// line) and payload bytes follow raw. Stream multiplexing and flow control
// are QUIC's job; reservations made through transport.Stream are granted in
// full and backpressure is applied inside Write.
package quic

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/freekieb7/cobble/body"
	"github.com/freekieb7/cobble/transport"
	quicgo "github.com/quic-go/quic-go"
)

// Close codes used when a stream carries an unusable head.
const errorCodeMalformedHead quicgo.StreamErrorCode = 0x1

// One request head may carry at most this many fields.
const maxHeaderFields = 255

// Conn adapts one accepted QUIC connection. The dispatcher is its only
// caller, from a single goroutine.
type Conn struct {
	conn quicgo.Connection
}

func NewConn(conn quicgo.Connection) *Conn {
	return &Conn{conn: conn}
}

// Accept waits for the peer's next stream and parses its request head. A
// stream with a malformed head is reset and skipped; only connection-level
// failures surface as errors. io.EOF reports a gracefully closed
// connection.
func (c *Conn) Accept(ctx context.Context) (*transport.Request, transport.Stream, error) {
	for {
		str, err := c.conn.AcceptStream(ctx)
		if err != nil {
			var appErr *quicgo.ApplicationError
			if errors.As(err, &appErr) && appErr.ErrorCode == 0 {
				return nil, nil, io.EOF
			}
			if errors.Is(err, net.ErrClosed) {
				return nil, nil, io.EOF
			}
			return nil, nil, err
		}

		br := bufio.NewReader(str)
		req, err := readRequestHead(br)
		if err != nil {
			str.CancelRead(errorCodeMalformedHead)
			str.CancelWrite(errorCodeMalformedHead)
			continue
		}

		if v, found := req.Header.Get("content-length"); found {
			n, err := atoi([]byte(v))
			if err != nil {
				str.CancelRead(errorCodeMalformedHead)
				str.CancelWrite(errorCodeMalformedHead)
				continue
			}
			req.Body = body.NewSizedStream(uint64(n),
				body.NewReaderSource(io.LimitReader(br, int64(n))))
		} else {
			req.Body = body.NewStream(body.NewReaderSource(br))
		}

		return req, &Stream{str: str}, nil
	}
}

// readRequestHead parses the head block from the front of a stream.
func readRequestHead(br *bufio.Reader) (*transport.Request, error) {
	requestLine, err := br.ReadString('\n')
	if err != nil {
		return nil, err
	}
	requestLine = strings.TrimSpace(requestLine)
	parts := strings.Split(requestLine, " ")
	if len(parts) < 3 {
		return nil, fmt.Errorf("malformed request line: %s", requestLine)
	}

	req := &transport.Request{
		Method: parts[0],
		Path:   parts[1],
		Proto:  parts[2],
	}

	for {
		if req.Header.Len() >= maxHeaderFields {
			return nil, errors.New("too many header fields")
		}

		line, err := br.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("header read error: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break // end of head block
		}

		i := strings.Index(line, ":")
		if i < 0 {
			return nil, fmt.Errorf("malformed header line: %s", line)
		}
		req.Header.Add(strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]))
	}

	return req, nil
}

func atoi(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, errors.New("invalid number")
	}
	var n int
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, errors.New("invalid number")
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
