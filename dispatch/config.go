package dispatch

import (
	"log/slog"
	"time"

	"github.com/freekieb7/cobble/http"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// DefaultChunkSize caps how much flow-control credit is reserved for one
// send, bounding the memory pinned per in-flight chunk.
const DefaultChunkSize = 16 * 1024

// Config carries the per-connection dispatch settings. The zero value is
// usable; empty fields fall back to defaults.
type Config struct {
	// Proto is the protocol version stamped on prepared response heads.
	// Defaults to http.Proto2.
	Proto string

	// ChunkSize overrides DefaultChunkSize.
	ChunkSize int

	// Now supplies the clock for synthesized date headers. Defaults to
	// time.Now.
	Now func() time.Time

	// Logger receives per-stream failure records. Defaults to the
	// OpenTelemetry slog bridge.
	Logger *slog.Logger
}

func (cfg Config) withDefaults() Config {
	if cfg.Proto == "" {
		cfg.Proto = http.Proto2
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = otelslog.NewLogger(name)
	}
	return cfg
}
