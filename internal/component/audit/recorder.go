// Package audit records component mutations into the append-only audit log.
// Records are written through the caller's transaction so a mutation and its
// record commit or roll back together.
package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"uims/internal/component/mapper"
	"uims/internal/component/models"
	"uims/pkg/requestcontext"
)

// Store appends audit records. Implementations must join the transaction
// carried by ctx, if any.
type Store interface {
	AppendAudit(ctx context.Context, record models.AuditRecord) error
}

// Recorder builds audit records from components.
type Recorder struct {
	store Store
	newID func() uuid.UUID
}

// NewRecorder creates a Recorder that appends to store.
func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store, newID: uuid.New}
}

// Build snapshots c for action without persisting it.
func (r *Recorder) Build(ctx context.Context, c models.Component, action models.Action) models.AuditRecord {
	return models.AuditRecord{
		ID:            r.newID(),
		ComponentID:   c.ID,
		ComponentType: c.Kind(),
		Action:        action,
		Snapshot:      mapper.Snapshot(c),
		RecordedAt:    requestcontext.Now(ctx).UTC(),
	}
}

// Record snapshots c and appends the record. The returned error means the
// surrounding unit of work must not commit.
func (r *Recorder) Record(ctx context.Context, c models.Component, action models.Action) (models.AuditRecord, error) {
	record := r.Build(ctx, c, action)
	if err := r.store.AppendAudit(ctx, record); err != nil {
		return models.AuditRecord{}, fmt.Errorf("append %s audit record for component %d: %w", action, c.ID, err)
	}
	return record, nil
}
