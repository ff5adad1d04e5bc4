package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ec-club-bing/website/internal/models"
	"github.com/ec-club-bing/website/pkg/jobs"
)

const auditWriteTimeout = 5 * time.Second

type auditStore interface {
	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error
}

// AuditWriter stores audit entries off the request path. When the queue cannot take an entry it is
// written synchronously instead, so the trail has no gaps while the store is healthy.
type AuditWriter struct {
	store  auditStore
	queue  *jobs.Queue[*models.AuditLog]
	logger *zap.Logger
}

func NewAuditWriter(store auditStore, logger *zap.Logger, cfg jobs.Config) *AuditWriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &AuditWriter{store: store, logger: logger}
	cfg.Logger = logger
	w.queue = jobs.NewQueue("audit", w.write, cfg)
	return w
}

func (w *AuditWriter) Start(ctx context.Context) { w.queue.Start(ctx) }

// Stop flushes queued entries, giving up when ctx ends.
func (w *AuditWriter) Stop(ctx context.Context) error { return w.queue.Stop(ctx) }

// CreateAuditLog queues entry for storage.
func (w *AuditWriter) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	if err := w.queue.Enqueue(entry); err != nil {
		w.logger.Debug("audit queue unavailable, writing inline", zap.Error(err))
		return w.write(ctx, entry)
	}
	return nil
}

func (w *AuditWriter) write(ctx context.Context, entry *models.AuditLog) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
	defer cancel()
	return w.store.CreateAuditLog(ctx, entry)
}
