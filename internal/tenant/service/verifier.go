package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tally/pkg/slogx"
)

// AuditVerifierService periodically replays every audit chain and logs the
// ones that no longer verify.
type AuditVerifierService struct {
	Audit    *AuditService
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewAuditVerifierService defaults a non-positive interval to 6 hours.
func NewAuditVerifierService(audit *AuditService, logger *slog.Logger, interval time.Duration) *AuditVerifierService {
	if interval <= 0 {
		interval = 6 * time.Hour
	}

	return &AuditVerifierService{
		Audit:    audit,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the worker in the background. Call Stop to shut it down.
func (s *AuditVerifierService) Start() {
	go s.run()
	s.Logger.Info("audit verifier started", "interval", s.Interval)
}

// Stop blocks until an in-progress pass has finished.
func (s *AuditVerifierService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("audit verifier stopped")
}

func (s *AuditVerifierService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.VerifyOnce(context.Background())

	for {
		select {
		case <-ticker.C:
			s.VerifyOnce(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// VerifyOnce runs a single pass and returns the number of broken chains.
func (s *AuditVerifierService) VerifyOnce(ctx context.Context) int {
	ctx = slogx.WithContext(ctx, s.Logger)
	s.Logger.Debug("starting audit verification")

	reports, err := s.Audit.VerifyAll(ctx)
	if err != nil {
		s.Logger.Error("audit verification failed", "error", err)
		return 0
	}

	broken := 0
	for _, r := range reports {
		if !r.OK {
			broken++
		}
	}
	s.Logger.Info("audit verification completed", "chains", len(reports), "broken", broken)
	return broken
}
