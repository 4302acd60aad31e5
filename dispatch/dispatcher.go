// Package dispatch drives one multiplexed connection: it accepts streams
// and turns each one into an independently running response pipeline.
package dispatch

import (
	"context"
	"io"
	"net"

	"github.com/freekieb7/cobble/body"
	"github.com/freekieb7/cobble/http"
	"github.com/freekieb7/cobble/transport"
	"github.com/freekieb7/cobble/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const name = "github.com/freekieb7/cobble/dispatch"

var (
	meter = otel.Meter(name)

	streamsAccepted metric.Int64Counter
	dispatchErrors  metric.Int64Counter
)

func init() {
	var err error
	streamsAccepted, err = meter.Int64Counter("cobble.dispatch.streams",
		metric.WithDescription("The number of streams accepted per connection loop"),
		metric.WithUnit("{stream}"))
	if err != nil {
		panic(err)
	}

	dispatchErrors, err = meter.Int64Counter("cobble.dispatch.errors",
		metric.WithDescription("The number of failed response pipelines by failure kind"),
		metric.WithUnit("{error}"))
	if err != nil {
		panic(err)
	}
}

// Dispatcher owns one multiplexed connection. Its accept loop is the only
// code that touches the connection; every accepted stream is handed off to
// its own goroutine together with a shared handler reference.
type Dispatcher struct {
	conn     transport.Conn
	handler  http.Handler
	config   Config
	peerAddr net.Addr
	connID   string
}

func New(conn transport.Conn, handler http.Handler, config Config) *Dispatcher {
	return &Dispatcher{
		conn:    conn,
		handler: handler,
		config:  config.withDefaults(),
		connID:  uuid.NewV4().String(),
	}
}

func (d *Dispatcher) WithPeerAddr(addr net.Addr) *Dispatcher {
	d.peerAddr = addr
	return d
}

// Serve accepts streams until the connection ends. Values on ctx are the
// connection-scoped data every request context inherits.
//
// Per-stream failures are logged and counted but never end the loop; the
// only error Serve returns is an accept-level transport error. A graceful
// end of the connection (io.EOF from Accept) returns nil.
func (d *Dispatcher) Serve(ctx context.Context) error {
	for {
		accepted, stream, err := d.conn.Accept(ctx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		streamsAccepted.Add(ctx, 1)

		req := &http.Request{
			Method:   accepted.Method,
			Path:     accepted.Path,
			Proto:    accepted.Proto,
			Header:   accepted.Header,
			PeerAddr: d.peerAddr,
			Body:     accepted.Body,
		}
		req = req.WithContext(ctx)

		go d.serveStream(ctx, req, stream)
	}
}

// serveStream is one response pipeline. Its outcome never affects other
// streams or the accept loop.
func (d *Dispatcher) serveStream(ctx context.Context, req *http.Request, stream transport.Stream) {
	res, err := d.handler(ctx, req)
	if err != nil {
		res = http.ResponseFromError(err)
	}
	if res.Body == nil {
		res.Body = body.NoBody{}
	}

	if err := handleResponse(ctx, d.config, res, stream); err != nil {
		d.report(ctx, err)
	}
}

func (d *Dispatcher) report(ctx context.Context, err error) {
	kind := KindDataSend
	if derr, ok := err.(*Error); ok {
		kind = derr.Kind
	}

	switch kind {
	case KindHeadSend:
		d.config.Logger.DebugContext(ctx, "sending response head failed",
			"conn", d.connID, "error", err)
	case KindDataSend:
		d.config.Logger.WarnContext(ctx, "sending response data failed",
			"conn", d.connID, "error", err)
	case KindBody:
		d.config.Logger.ErrorContext(ctx, "response body stream failed",
			"conn", d.connID, "error", err)
	}

	dispatchErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind.String())))
}
