package dispatch

import (
	"context"
	"io"

	"github.com/freekieb7/cobble/http"
	"github.com/freekieb7/cobble/transport"
)

// handleResponse drives one response over its stream: the prepared head
// first, then body chunks under flow control, then the end-of-stream
// frame. It returns nil on success and on clean early termination (peer
// closed the stream); everything else is an *Error.
func handleResponse(ctx context.Context, cfg Config, res *http.Response, stream transport.Stream) error {
	size := res.Body.Size()
	head := prepareHead(cfg, res, &size)
	eof := size.EOF()

	if err := stream.SendHead(head, eof); err != nil {
		return &Error{Kind: KindHeadSend, Err: err}
	}

	// No body phase; the head ended the stream.
	if eof {
		return nil
	}

	for {
		chunk, err := res.Body.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return &Error{Kind: KindBody, Err: err}
		}

		// A zero-length chunk is a frame in its own right. Suppressing
		// empty chunks is the stream adapter's job, not the pipeline's.
		if len(chunk) == 0 {
			if err := stream.SendData(nil, false); err != nil {
				return &Error{Kind: KindDataSend, Err: err}
			}
			continue
		}

		for len(chunk) > 0 {
			stream.ReserveCapacity(min(len(chunk), cfg.ChunkSize))

			granted, err := stream.Capacity(ctx)
			if err != nil {
				return &Error{Kind: KindDataSend, Err: err}
			}
			if granted == 0 {
				// Peer closed the stream. Nothing more can be sent, not
				// even the end-of-stream frame.
				return nil
			}

			n := min(granted, len(chunk))
			if err := stream.SendData(chunk[:n], false); err != nil {
				return &Error{Kind: KindDataSend, Err: err}
			}
			chunk = chunk[n:]
		}
	}

	// Body finished normally; seal the stream.
	if err := stream.SendData(nil, true); err != nil {
		return &Error{Kind: KindDataSend, Err: err}
	}
	return nil
}
