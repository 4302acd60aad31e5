// Package body defines the contract between a response producer and the
// transport dispatcher: a declared size plus a lazy sequence of byte chunks.
package body

import (
	"context"
	"io"
)

// SizeKind tags the four ways a body can declare its size.
type SizeKind uint8

const (
	// SizeNone means the message carries no body at all.
	SizeNone SizeKind = iota
	// SizeEmpty means the body is known to be empty.
	SizeEmpty
	// SizeSized means the body length is known up front.
	SizeSized
	// SizeStream means the body length is unknown until it ends.
	SizeStream
)

// Size is the declared size of a message body, known before any chunk is
// produced.
type Size struct {
	Kind SizeKind
	Len  uint64 // valid when Kind is SizeSized
}

func None() Size          { return Size{Kind: SizeNone} }
func Empty() Size         { return Size{Kind: SizeEmpty} }
func Sized(n uint64) Size { return Size{Kind: SizeSized, Len: n} }
func Streaming() Size     { return Size{Kind: SizeStream} }

// EOF reports whether a body of this size produces no bytes, so the
// response ends with its head.
func (s Size) EOF() bool {
	switch s.Kind {
	case SizeNone, SizeEmpty:
		return true
	case SizeSized:
		return s.Len == 0
	default:
		return false
	}
}

// Body is a response payload: a size declaration plus chunks produced on
// demand.
//
// Size must be side-effect free and callable any number of times before the
// first Next call. Next returns io.EOF once the body is exhausted; any
// other error means the producer failed. After io.EOF or a failure, Next
// must not be called again.
type Body interface {
	Size() Size
	Next(ctx context.Context) ([]byte, error)
}

// NoBody is a message without a body phase.
type NoBody struct{}

func (NoBody) Size() Size                           { return None() }
func (NoBody) Next(context.Context) ([]byte, error) { return nil, io.EOF }

// EmptyBody is a body that is declared empty.
type EmptyBody struct{}

func (EmptyBody) Size() Size                           { return Empty() }
func (EmptyBody) Next(context.Context) ([]byte, error) { return nil, io.EOF }

// Bytes is a body consisting of a single chunk of known length.
type Bytes struct {
	data []byte
	done bool
}

func NewBytes(data []byte) *Bytes {
	return &Bytes{data: data}
}

func (b *Bytes) Size() Size {
	return Sized(uint64(len(b.data)))
}

func (b *Bytes) Next(ctx context.Context) ([]byte, error) {
	if b.done || len(b.data) == 0 {
		return nil, io.EOF
	}
	b.done = true
	return b.data, nil
}

// ReadAll drains b into a single byte slice.
func ReadAll(ctx context.Context, b Body) ([]byte, error) {
	var buf []byte
	if s := b.Size(); s.Kind == SizeSized {
		buf = make([]byte, 0, s.Len)
	}
	for {
		chunk, err := b.Next(ctx)
		if err == io.EOF {
			return buf, nil
		}
		if err != nil {
			return nil, err
		}
		buf = append(buf, chunk...)
	}
}
