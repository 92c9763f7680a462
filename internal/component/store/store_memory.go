package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"uims/internal/component/mapper"
	"uims/internal/component/models"
	"uims/pkg/domain"
	"uims/pkg/platform/pagination"
	"uims/pkg/platform/sentinel"
)

// InMemory keeps components and audit records in process. It stores the same
// Row shape as the SQL store so every read goes through the mapper.
//
// RunInTx serializes units of work and restores the previous state when the
// work fails, giving the same all-or-nothing outcome as a SQL transaction.
type InMemory struct {
	txMu sync.Mutex

	mu     sync.RWMutex
	rows   map[int64]mapper.Row
	nextID int64
	audit  []models.AuditRecord
}

// NewInMemory creates an empty store.
func NewInMemory() *InMemory {
	return &InMemory{
		rows:   make(map[int64]mapper.Row),
		nextID: 1,
	}
}

type memoryState struct {
	rows   map[int64]mapper.Row
	nextID int64
	audit  []models.AuditRecord
}

func (s *InMemory) snapshot() memoryState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make(map[int64]mapper.Row, len(s.rows))
	for id, r := range s.rows {
		rows[id] = r
	}
	audit := make([]models.AuditRecord, len(s.audit))
	copy(audit, s.audit)
	return memoryState{rows: rows, nextID: s.nextID, audit: audit}
}

func (s *InMemory) restore(st memoryState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = st.rows
	s.nextID = st.nextID
	s.audit = st.audit
}

// RunInTx runs fn as one unit of work.
func (s *InMemory) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	before := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(before)
		return err
	}
	return nil
}

// Create inserts draft into spaceID and assigns its id and display id.
func (s *InMemory) Create(_ context.Context, spaceID domain.SpaceID, draft models.Draft) (models.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := domain.ComponentID(s.nextID)
	s.nextID++
	c := draft.Materialize(id, spaceID, mapper.DisplayID(draft.Kind(), id))
	s.rows[int64(id)] = mapper.ToRow(c)
	return c, nil
}

// FindActive returns the component with id unless it is absent or deleted.
func (s *InMemory) FindActive(_ context.Context, id domain.ComponentID) (models.Component, error) {
	s.mu.RLock()
	r, ok := s.rows[int64(id)]
	s.mu.RUnlock()
	if !ok || r.IsDeleted {
		return models.Component{}, fmt.Errorf("component %d: %w", id, sentinel.ErrNotFound)
	}
	return mapper.FromRow(r)
}

// Update replaces the mutable columns of an active component.
func (s *InMemory) Update(_ context.Context, c models.Component) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.rows[int64(c.ID)]
	if !ok || current.IsDeleted {
		return fmt.Errorf("component %d: %w", c.ID, sentinel.ErrNotFound)
	}
	next := mapper.ToRow(c)
	next.ID = current.ID
	next.SpaceID = current.SpaceID
	next.ComponentType = current.ComponentType
	next.DisplayID = current.DisplayID
	next.IsDeleted = false
	s.rows[int64(c.ID)] = next
	return nil
}

// MarkDeleted sets the deleted flag of an active component.
func (s *InMemory) MarkDeleted(_ context.Context, id domain.ComponentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rows[int64(id)]
	if !ok || r.IsDeleted {
		return fmt.Errorf("component %d: %w", id, sentinel.ErrNotFound)
	}
	r.IsDeleted = true
	s.rows[int64(id)] = r
	return nil
}

// List returns one page of active components matching f, ordered by id.
func (s *InMemory) List(_ context.Context, f Filter, page pagination.Page) (pagination.Result[models.Component], error) {
	s.mu.RLock()
	matched := make([]mapper.Row, 0, len(s.rows))
	for _, r := range s.rows {
		if r.IsDeleted || !f.matches(r.SpaceID, r.DisplayID) {
			continue
		}
		matched = append(matched, r)
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	window := pagination.Slice(matched, page)
	items := make([]models.Component, 0, len(window.Items))
	for _, r := range window.Items {
		c, err := mapper.FromRow(r)
		if err != nil {
			return pagination.Result[models.Component]{}, err
		}
		items = append(items, c)
	}
	return pagination.NewResult(items, window.TotalCount, page), nil
}

// AppendAudit appends record to the log.
func (s *InMemory) AppendAudit(_ context.Context, record models.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, record)
	return nil
}

// ListAudit returns every record for id in append order.
func (s *InMemory) ListAudit(_ context.Context, id domain.ComponentID) ([]models.AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.AuditRecord
	for _, r := range s.audit {
		if r.ComponentID == id {
			out = append(out, r)
		}
	}
	return out, nil
}

// PutRow stores r as-is, bypassing the mapper. It exists for exercising
// read paths against rows written by other tools.
func (s *InMemory) PutRow(r mapper.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[r.ID] = r
	if r.ID >= s.nextID {
		s.nextID = r.ID + 1
	}
}
