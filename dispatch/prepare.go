package dispatch

import (
	"github.com/freekieb7/cobble/body"
	"github.com/freekieb7/cobble/http"
)

const dateFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// prepareHead maps a response head and its declared body size to the wire
// head for the multiplexed transport. Status-driven overrides are written
// back through size so the caller sees the effective body size.
//
// Given the same inputs and clock the result is identical every time.
func prepareHead(cfg Config, res *http.Response, size *body.Size) *http.ResponseHead {
	head := &http.ResponseHead{
		Status: res.Status,
		Proto:  cfg.Proto,
	}

	// An explicit content-length supplied by the handler only survives for
	// streaming bodies; everywhere else the size declaration wins.
	skipLen := size.Kind != body.SizeStream

	switch res.Status {
	case http.StatusNoContent, http.StatusContinue, http.StatusProcessing:
		*size = body.None()
	case http.StatusSwitchingProtocols:
		skipLen = true
		*size = body.Streaming()
	}

	switch size.Kind {
	case body.SizeNone, body.SizeStream:
		// no length header
	case body.SizeEmpty:
		head.Header.Add("content-length", "0")
	case body.SizeSized:
		head.Header.Add("content-length", formatUint(size.Len))
	}

	hasDate := false
	for _, f := range res.Header.Fields() {
		switch f.Name {
		case "connection", "transfer-encoding":
			// HTTP/1.x connection-management headers are meaningless on a
			// multiplexed transport
			continue
		case "content-length":
			if skipLen {
				continue
			}
		case "date":
			hasDate = true
		}
		head.Header.Add(f.Name, f.Value)
	}

	if !hasDate {
		head.Header.Add("date", cfg.Now().UTC().Format(dateFormat))
	}

	return head
}

// formatUint renders n as decimal ASCII without allocation beyond the
// result string.
func formatUint(n uint64) string {
	var buf [20]byte
	return string(buf[:writeUintToBuffer(n, buf[:])])
}

// writeUintToBuffer writes n in decimal to buf and returns the number of
// digits written.
func writeUintToBuffer(n uint64, buf []byte) int {
	if n == 0 {
		buf[0] = '0'
		return 1
	}

	// Calculate digits needed
	temp := n
	digits := 0
	for temp > 0 {
		digits++
		temp /= 10
	}

	// Write digits backwards
	for i := digits - 1; i >= 0; i-- {
		buf[i] = '0' + byte(n%10)
		n /= 10
	}

	return digits
}
