package repository

import (
	"context"
	"fmt"

	"github.com/ec-club-bing/website/internal/docstore"
	"github.com/ec-club-bing/website/internal/models"
)

// AuditRepository appends admin audit entries to the auditLogs collection.
type AuditRepository struct {
	store docstore.Store
}

func NewAuditRepository(store docstore.Store) *AuditRepository {
	return &AuditRepository{store: store}
}

// CreateAuditLog stores entry and fills in its id.
func (r *AuditRepository) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	id, err := r.store.Create(ctx, models.CollectionAuditLogs, entry.Fields())
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	entry.ID = id
	return nil
}

// ListRecent returns the newest entries first.
func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	docs, err := r.store.List(ctx, models.CollectionAuditLogs, docstore.Query{
		OrderBy:   "createdAt",
		Direction: docstore.Desc,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	entries := make([]models.AuditLog, 0, len(docs))
	for _, doc := range docs {
		var entry models.AuditLog
		if err := decodeDocument(doc, &entry); err != nil {
			return nil, err
		}
		entry.ID = doc.ID
		entries = append(entries, entry)
	}
	return entries, nil
}
