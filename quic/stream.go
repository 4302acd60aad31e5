package quic

import (
	"bytes"
	"context"
	"strconv"

	"github.com/freekieb7/cobble/http"
	quicgo "github.com/quic-go/quic-go"
)

// Stream adapts the send side of one QUIC stream. Owned by exactly one
// response pipeline.
type Stream struct {
	str      quicgo.Stream
	reserved int
}

func (s *Stream) SendHead(head *http.ResponseHead, eof bool) error {
	if _, err := s.str.Write(encodeResponseHead(head)); err != nil {
		return err
	}
	if eof {
		return s.str.Close()
	}
	return nil
}

// ReserveCapacity records the size of the next send. QUIC applies its own
// flow control inside Write, so the reservation is granted as-is.
func (s *Stream) ReserveCapacity(n int) {
	s.reserved = n
}

// Capacity grants the current reservation, unless the send side of the
// stream was closed or reset in the meantime.
func (s *Stream) Capacity(ctx context.Context) (int, error) {
	select {
	case <-s.str.Context().Done():
		return 0, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}
	return s.reserved, nil
}

func (s *Stream) SendData(p []byte, endStream bool) error {
	if len(p) > 0 {
		if _, err := s.str.Write(p); err != nil {
			return err
		}
	}
	if endStream {
		return s.str.Close()
	}
	return nil
}

func encodeResponseHead(head *http.ResponseHead) []byte {
	var buf bytes.Buffer
	buf.WriteString(head.Proto)
	buf.WriteByte(' ')
	buf.WriteString(strconv.Itoa(head.Status))
	buf.WriteByte(' ')
	buf.WriteString(http.StatusText(head.Status))
	buf.WriteString("\r\n")

	for _, f := range head.Header.Fields() {
		buf.WriteString(f.Name)
		buf.WriteString(": ")
		buf.WriteString(f.Value)
		buf.WriteString("\r\n")
	}

	buf.WriteString("\r\n")
	return buf.Bytes()
}
