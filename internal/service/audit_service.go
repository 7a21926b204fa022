package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/drivedesk-gateway/internal/models"
	"github.com/noah-isme/drivedesk-gateway/pkg/jobs"
)

const auditJobType = "audit_log"

type auditWriter interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// AuditServiceConfig tunes the audit worker pool.
type AuditServiceConfig struct {
	Workers      int
	MaxRetries   int
	WriteTimeout time.Duration
}

// AuditService records dashboard mutations off the request path.
type AuditService struct {
	repo    auditWriter
	queue   *jobs.Queue
	logger  *zap.Logger
	timeout time.Duration
}

// NewAuditService constructs an AuditService writing through repo.
func NewAuditService(repo auditWriter, cfg AuditServiceConfig, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	svc := &AuditService{repo: repo, logger: logger, timeout: cfg.WriteTimeout}
	svc.queue = jobs.NewQueue("audit", svc.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	})
	return svc
}

// Start launches the workers.
func (s *AuditService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop cancels the workers and waits for them to exit. Queued entries are lost.
func (s *AuditService) Stop() {
	s.queue.Stop()
}

// Record queues entry. A full queue drops the entry with a warning so
// requests never wait on the audit trail.
func (s *AuditService) Record(entry models.AuditLog) {
	if s == nil {
		return
	}
	if err := s.queue.TryEnqueue(jobs.Job{ID: entry.RequestID, Type: auditJobType, Payload: entry}); err != nil {
		s.logger.Warn("audit entry dropped", zap.String("action", entry.Action), zap.Error(err))
	}
}

func (s *AuditService) handle(ctx context.Context, job jobs.Job) error {
	entry, ok := job.Payload.(models.AuditLog)
	if !ok {
		return fmt.Errorf("unexpected audit payload %T", job.Payload)
	}
	writeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.Create(writeCtx, &entry)
}
