package sync

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Scheduler drives the syncer: a periodic full refresh plus a fast health
// poll that detects the offline→online transition. Reconnecting replays the
// queued mutations first, then refreshes, so the mirror reflects the
// replayed writes.
type Scheduler struct {
	syncer         *Syncer
	syncInterval   time.Duration
	healthInterval time.Duration
}

func NewScheduler(syncer *Syncer, syncInterval, healthInterval time.Duration) *Scheduler {
	return &Scheduler{
		syncer:         syncer,
		syncInterval:   syncInterval,
		healthInterval: healthInterval,
	}
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	// Replay is last-writer-wins: no conflict detection between writes
	// queued offline and writes that reached the server directly.
	log.Info().Msg("sync: replay uses last-writer-wins, no conflict detection")

	online := s.syncer.Online(ctx)
	if online {
		// The agent may have been restarted with mutations still queued
		// from its last offline stretch. Drain them before mirroring.
		if replayed, err := s.syncer.Replay(ctx); err != nil {
			log.Warn().Err(err).Int("replayed", replayed).Msg("sync: startup replay incomplete")
		} else if replayed > 0 {
			log.Info().Int("replayed", replayed).Msg("sync: startup queue drained")
		}
		s.syncer.FullRefresh(ctx)
		s.syncer.PrimeShell(ctx)
	}

	refresh := time.NewTicker(s.syncInterval)
	defer refresh.Stop()
	health := time.NewTicker(s.healthInterval)
	defer health.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("sync: scheduler stopped")
			return

		case <-refresh.C:
			if online {
				s.syncer.FullRefresh(ctx)
			}

		case <-health.C:
			now := s.syncer.Online(ctx)
			if now && !online {
				log.Info().Msg("sync: upstream reachable again")
				if replayed, err := s.syncer.Replay(ctx); err != nil {
					log.Warn().Err(err).Int("replayed", replayed).Msg("sync: replay incomplete")
				} else if replayed > 0 {
					log.Info().Int("replayed", replayed).Msg("sync: queue drained")
				}
				s.syncer.FullRefresh(ctx)
			}
			if !now && online {
				log.Warn().Msg("sync: upstream unreachable, serving from cache")
			}
			online = now
		}
	}
}
