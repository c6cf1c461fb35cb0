package services

import (
	"context"
	"time"

	"lazymint/pkg/logger"
)

// Sweeper periodically expires abandoned claims and re-drives ticket
// attachment for claims stranded between verification and completion.
type Sweeper struct {
	claims   ClaimService
	interval time.Duration
	logger   *logger.Logger
}

func NewSweeper(claims ClaimService, interval time.Duration, log *logger.Logger) *Sweeper {
	return &Sweeper{
		claims:   claims,
		interval: interval,
		logger:   log,
	}
}

// Start runs the sweep loop until the context is canceled. An initial
// sweep runs immediately so restarts recover stranded claims promptly.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	expired, err := s.claims.ExpireStaleClaims(ctx)
	if err != nil {
		s.logger.WithError(err).Error("claim expiry sweep failed")
	} else if expired > 0 {
		s.logger.WithField("expired", expired).Info("expired stale claims")
	}

	recovered, err := s.claims.RecoverUnattachedTickets(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ticket recovery sweep failed")
	} else if recovered > 0 {
		s.logger.WithField("recovered", recovered).Info("recovered unattached tickets")
	}
}
