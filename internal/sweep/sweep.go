// Package sweep runs the auto-delete background loop: on every tick it
// re-reads the auto-delete settings and, when enabled, applies the retention
// policy to the store. Settings changes take effect on the next tick without
// a restart.
package sweep

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/erazemk/najdeno/internal/storage"
	"github.com/erazemk/najdeno/internal/store"
)

type Sweeper struct {
	store    *store.Store
	gw       *storage.Gateway
	interval time.Duration
	log      zerolog.Logger
}

func New(s *store.Store, gw *storage.Gateway, interval time.Duration, log zerolog.Logger) *Sweeper {
	return &Sweeper{store: s, gw: gw, interval: interval, log: log}
}

// Run blocks until ctx is cancelled, sweeping once per interval.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", s.interval).Msg("auto-delete sweeper started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("auto-delete sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	ad := s.gw.LoadAutoDelete(ctx)
	if !ad.Enabled {
		return
	}

	removed, err := s.store.ApplyRetentionPolicy(ctx, ad.Value, ad.Unit)
	if err != nil {
		s.log.Warn().Err(err).Msg("auto-delete sweep failed")
		return
	}
	if removed > 0 {
		s.log.Info().Int("removed", removed).Int("value", ad.Value).Str("unit", ad.Unit).Msg("auto-delete removed expired items")
	}
}
