package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const defaultRefreshInterval = 15 * time.Second

// Loader is anything that re-reads authoritative state from the server.
type Loader interface {
	Load(ctx context.Context) error
}

// Refresher polls the server so that a session expired server-side is
// noticed without operator action.
type Refresher struct {
	loader   Loader
	interval time.Duration
	log      zerolog.Logger
}

// NewRefresher returns a Refresher. If interval <= 0, defaultRefreshInterval
// is used.
func NewRefresher(loader Loader, interval time.Duration, log zerolog.Logger) *Refresher {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &Refresher{loader: loader, interval: interval, log: log}
}

// Run loads once immediately, then on every tick until ctx is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	r.tick(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Refresher) tick(ctx context.Context) {
	if err := r.loader.Load(ctx); err != nil {
		r.log.Debug().Err(err).Msg("state refresh failed")
	}
}
