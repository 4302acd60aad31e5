package body_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/freekieb7/cobble/body"
	"github.com/freekieb7/cobble/test"
)

// chunkSource yields the given chunks in order, then the final error.
func chunkSource(final error, chunks ...string) body.Source {
	i := 0
	return body.SourceFunc(func(ctx context.Context) ([]byte, error) {
		if i >= len(chunks) {
			return nil, final
		}
		chunk := []byte(chunks[i])
		i++
		return chunk, nil
	})
}

func TestStreamSkipsEmptyChunks(t *testing.T) {
	s := body.NewStream(chunkSource(io.EOF, "1", "", "2"))

	chunk, err := s.Next(context.Background())
	test.AssertNoError(t, err)
	test.AssertBytesEqual(t, []byte("1"), chunk)

	chunk, err = s.Next(context.Background())
	test.AssertNoError(t, err)
	test.AssertBytesEqual(t, []byte("2"), chunk)

	if _, err := s.Next(context.Background()); err != io.EOF {
		t.Errorf("Expected io.EOF, got %v", err)
	}
}

func TestStreamReadAll(t *testing.T) {
	s := body.NewStream(chunkSource(io.EOF, "1", "", "2"))

	data, err := body.ReadAll(context.Background(), s)
	test.AssertNoError(t, err)
	test.AssertBytesEqual(t, []byte("12"), data)
}

func TestStreamSize(t *testing.T) {
	s := body.NewStream(chunkSource(io.EOF))
	test.AssertEqual(t, body.SizeStream, s.Size().Kind)
}

func TestStreamImmediateError(t *testing.T) {
	errProducer := errors.New("stream error")
	s := body.NewStream(chunkSource(errProducer))

	if _, err := s.Next(context.Background()); err != errProducer {
		t.Errorf("Expected producer error unchanged, got %v", err)
	}
}

func TestStreamDelayedError(t *testing.T) {
	errProducer := errors.New("stream error")
	s := body.NewStream(chunkSource(errProducer, "1", ""))

	chunk, err := s.Next(context.Background())
	test.AssertNoError(t, err)
	test.AssertBytesEqual(t, []byte("1"), chunk)

	// The empty chunk before the failure must not mask it.
	if _, err := s.Next(context.Background()); err != errProducer {
		t.Errorf("Expected producer error unchanged, got %v", err)
	}
}

func TestSizedStream(t *testing.T) {
	s := body.NewSizedStream(2, chunkSource(io.EOF, "1", "", "2"))

	size := s.Size()
	test.AssertEqual(t, body.SizeSized, size.Kind)
	test.AssertEqual(t, uint64(2), size.Len)

	data, err := body.ReadAll(context.Background(), s)
	test.AssertNoError(t, err)
	test.AssertBytesEqual(t, []byte("12"), data)
}

func TestReaderSource(t *testing.T) {
	s := body.NewStream(body.NewReaderSource(strings.NewReader("hello world")))

	data, err := body.ReadAll(context.Background(), s)
	test.AssertNoError(t, err)
	test.AssertBytesEqual(t, []byte("hello world"), data)
}

func TestReaderSourceCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := body.NewReaderSource(strings.NewReader("hello"))
	if _, err := src.Next(ctx); err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
