package dispatch

import "fmt"

// ErrorKind distinguishes where a response pipeline failed.
type ErrorKind uint8

const (
	// KindHeadSend means the prepared head could not be transmitted; the
	// stream was never usable.
	KindHeadSend ErrorKind = iota
	// KindDataSend means a data frame or capacity request failed after the
	// head was sent; a partial response may have reached the peer.
	KindDataSend
	// KindBody means the response body producer itself failed.
	KindBody
)

func (k ErrorKind) String() string {
	switch k {
	case KindHeadSend:
		return "send head"
	case KindDataSend:
		return "send data"
	case KindBody:
		return "response body"
	default:
		return "unknown"
	}
}

// Error is the terminal outcome of one failed response pipeline. It is
// logged and counted, never propagated to the accept loop.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("dispatch: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
