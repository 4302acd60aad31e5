package body

import (
	"context"
	"io"
)

// Source is a fallible sequence of byte chunks. Next returns io.EOF when
// the sequence is complete.
type Source interface {
	Next(ctx context.Context) ([]byte, error)
}

// SourceFunc adapts a plain function to a Source.
type SourceFunc func(ctx context.Context) ([]byte, error)

func (f SourceFunc) Next(ctx context.Context) ([]byte, error) { return f(ctx) }

// Stream adapts an arbitrary chunk Source into a Body of unknown length.
//
// Transports may treat a zero-length chunk as the end of the body, so
// Stream never surfaces empty chunks: it keeps polling the wrapped source
// until it yields a non-empty chunk, an error, or io.EOF. Source errors are
// forwarded unchanged.
type Stream struct {
	src Source
}

func NewStream(src Source) *Stream {
	return &Stream{src: src}
}

func (s *Stream) Size() Size { return Streaming() }

func (s *Stream) Next(ctx context.Context) ([]byte, error) {
	for {
		chunk, err := s.src.Next(ctx)
		if err != nil {
			return nil, err
		}
		if len(chunk) == 0 {
			continue
		}
		return chunk, nil
	}
}

// SizedStream is a Stream whose total length is known even though it is
// produced chunk by chunk. The declared length is trusted as-is; it is the
// producer's job to yield exactly that many bytes.
type SizedStream struct {
	stream Stream
	length uint64
}

func NewSizedStream(length uint64, src Source) *SizedStream {
	return &SizedStream{stream: Stream{src: src}, length: length}
}

func (s *SizedStream) Size() Size { return Sized(s.length) }

func (s *SizedStream) Next(ctx context.Context) ([]byte, error) {
	return s.stream.Next(ctx)
}

// ReaderSource turns an io.Reader into a Source, one Read call per chunk.
type ReaderSource struct {
	r   io.Reader
	buf []byte
}

func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r, buf: make([]byte, 16*1024)}
}

func (s *ReaderSource) Next(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n, err := s.r.Read(s.buf)
	if n > 0 {
		chunk := make([]byte, n)
		copy(chunk, s.buf[:n])
		return chunk, nil
	}
	if err != nil {
		return nil, err
	}
	return nil, nil
}
