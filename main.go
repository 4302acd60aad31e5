package main

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"log"
	"math/big"
	"os"
	"os/signal"
	"time"

	"github.com/freekieb7/cobble/dispatch"
	"github.com/freekieb7/cobble/http"
	"github.com/freekieb7/cobble/quic"
	"github.com/freekieb7/cobble/telemetry"
	quicgo "github.com/quic-go/quic-go"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const name = "github.com/freekieb7/cobble"

var (
	tracer   = otel.Tracer(name)
	meter    = otel.Meter(name)
	logger   = otelslog.NewLogger(name)
	helloCnt metric.Int64Counter
)

func init() {
	var err error
	helloCnt, err = meter.Int64Counter("cobble.hello.requests",
		metric.WithDescription("The number of hello responses served"),
		metric.WithUnit("{request}"))
	if err != nil {
		panic(err)
	}
}

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		return err
	}
	defer shutdown(context.Background())

	tlsConf, err := selfSignedTLSConfig()
	if err != nil {
		return err
	}

	addr := "0.0.0.0:4433"
	listener, err := quicgo.ListenAddr(addr, tlsConf, nil)
	if err != nil {
		return err
	}
	defer listener.Close()

	handler := func(ctx context.Context, req *http.Request) (*http.Response, error) {
		ctx, span := tracer.Start(ctx, "hello")
		defer span.End()

		helloCnt.Add(ctx, 1)
		logger.InfoContext(ctx, "Serving hello", "method", req.Method, "path", req.Path)

		return http.NewResponse(http.StatusOK).WithText("hello world"), nil
	}

	serverErrCh := make(chan error, 1)

	go func() {
		log.Printf("Listening and serving on: %s", addr)
		serverErrCh <- serve(ctx, listener, handler)
	}()

	select {
	case err := <-serverErrCh:
		return err
	case <-ctx.Done():
		stop()
	}

	return nil
}

// serve runs one dispatcher per accepted connection.
func serve(ctx context.Context, listener *quicgo.Listener, handler http.Handler) error {
	for {
		conn, err := listener.Accept(ctx)
		if err != nil {
			return err
		}

		d := dispatch.New(quic.NewConn(conn), handler, dispatch.Config{Proto: http.Proto3}).
			WithPeerAddr(conn.RemoteAddr())

		go func() {
			if err := d.Serve(ctx); err != nil {
				logger.WarnContext(ctx, "Connection ended", "error", err)
			}
		}()
	}
}

// selfSignedTLSConfig builds a throwaway certificate so the demo server can
// start without provisioning. Real deployments terminate TLS elsewhere.
func selfSignedTLSConfig() (*tls.Config, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "cobble"},
		NotBefore:    time.Now(),
		NotAfter:     time.Now().Add(24 * time.Hour),
		DNSNames:     []string{"localhost"},
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		Certificates: []tls.Certificate{{
			Certificate: [][]byte{der},
			PrivateKey:  key,
		}},
		NextProtos: []string{"cobble"},
	}, nil
}
