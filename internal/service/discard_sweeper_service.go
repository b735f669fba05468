package service

import (
	"context"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/IsmaelSWO/league-backend/internal/domain"
)

// DiscardSweeperService removes discarded players whose reclaim window has passed
type DiscardSweeperService struct {
	players domain.PlayerService
	timeout time.Duration
	running atomic.Bool
}

// NewDiscardSweeperService creates a new DiscardSweeperService
func NewDiscardSweeperService(players domain.PlayerService, timeout time.Duration) *DiscardSweeperService {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &DiscardSweeperService{
		players: players,
		timeout: timeout,
	}
}

// Run performs one sweep. Overlapping runs are skipped.
func (s *DiscardSweeperService) Run(ctx context.Context) (int, error) {
	if !s.running.CompareAndSwap(false, true) {
		log.Debug("Discard sweep already running, skipping")
		return 0, nil
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	removed, err := s.players.SweepExpiredDiscards(ctx)
	if err != nil {
		log.WithError(err).Error("Discard sweep failed")
		return removed, err
	}

	log.WithFields(log.Fields{
		"removed":  removed,
		"duration": time.Since(start).String(),
	}).Debug("Discard sweep finished")
	return removed, nil
}
