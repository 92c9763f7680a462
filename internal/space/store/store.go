// Package store persists learning spaces. Reads never return deleted spaces.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"

	"uims/internal/platform/database"
	"uims/internal/space/models"
	"uims/pkg/domain"
	"uims/pkg/platform/sentinel"
	txcontext "uims/pkg/platform/tx"
)

const spacesTable = "learning_spaces"

var spaceColumns = []string{"id", "floor_id", "name", "capacity", "is_deleted", "created_at"}

// SQLStore persists learning spaces in the learning_spaces table.
type SQLStore struct {
	db      *sql.DB
	dialect database.Dialect
	sb      sq.StatementBuilderType
}

// NewSQL creates a store for db speaking dialect.
func NewSQL(db *sql.DB, dialect database.Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect, sb: dialect.Builder()}
}

// Create inserts space and sets its ID.
func (s *SQLStore) Create(ctx context.Context, space *models.LearningSpace) error {
	query, args, err := s.sb.Insert(spacesTable).
		Columns("floor_id", "name", "capacity", "is_deleted", "created_at").
		Values(int64(space.FloorID), space.Name, space.Capacity.Int(), false, space.CreatedAt.UTC()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert learning space: %w", err)
	}
	var id int64
	if err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return fmt.Errorf("insert learning space: %w", database.Classify(err))
	}
	space.ID = domain.SpaceID(id)
	return nil
}

// FindActive returns the space with id unless it is absent or deleted.
func (s *SQLStore) FindActive(ctx context.Context, id domain.SpaceID) (*models.LearningSpace, error) {
	query, args, err := s.sb.Select(spaceColumns...).
		From(spacesTable).
		Where(sq.Eq{"id": int64(id), "is_deleted": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find learning space: %w", err)
	}

	var (
		rawID, floorID int64
		capacity       int
		space          models.LearningSpace
	)
	err = txcontext.Exec(ctx, s.db).QueryRowContext(ctx, query, args...).
		Scan(&rawID, &floorID, &space.Name, &capacity, &space.IsDeleted, &space.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("learning space %d: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find learning space %d: %w", id, database.Classify(err))
	}
	c, err := domain.NewCapacity(capacity)
	if err != nil {
		return nil, fmt.Errorf("learning space %d has invalid capacity: %w", id, err)
	}
	space.ID = domain.SpaceID(rawID)
	space.FloorID = domain.FloorID(floorID)
	space.Capacity = c
	space.CreatedAt = space.CreatedAt.UTC()
	return &space, nil
}

// Exists reports whether a live space with id exists. It reads through the
// transaction in ctx so a component write sees the same state it validated.
func (s *SQLStore) Exists(ctx context.Context, id domain.SpaceID) (bool, error) {
	_, inTx := txcontext.From(ctx)
	query, args, err := s.existsQuery(id, inTx)
	if err != nil {
		return false, fmt.Errorf("build learning space exists: %w", err)
	}
	var one int
	err = txcontext.Exec(ctx, s.db).QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check learning space %d: %w", id, database.Classify(err))
	}
	return true, nil
}

// existsQuery selects the live space row. Inside a transaction on Postgres
// the row is share-locked so it cannot be soft-deleted before commit. SQLite
// serializes writers and has no row locks.
func (s *SQLStore) existsQuery(id domain.SpaceID, lock bool) (string, []any, error) {
	q := s.sb.Select("1").
		From(spacesTable).
		Where(sq.Eq{"id": int64(id), "is_deleted": false})
	if lock && s.dialect == database.Postgres {
		q = q.Suffix("FOR SHARE")
	}
	return q.ToSql()
}

// MarkDeleted sets the deleted flag of a live space.
func (s *SQLStore) MarkDeleted(ctx context.Context, id domain.SpaceID) error {
	query, args, err := s.sb.Update(spacesTable).
		Set("is_deleted", true).
		Where(sq.Eq{"id": int64(id), "is_deleted": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete learning space: %w", err)
	}
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete learning space %d: %w", id, database.Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete learning space %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("learning space %d: %w", id, sentinel.ErrNotFound)
	}
	return nil
}

// InMemory keeps learning spaces in process.
type InMemory struct {
	mu     sync.RWMutex
	spaces map[domain.SpaceID]models.LearningSpace
	nextID int64
}

// NewInMemory creates an empty store.
func NewInMemory() *InMemory {
	return &InMemory{spaces: make(map[domain.SpaceID]models.LearningSpace), nextID: 1}
}

func (s *InMemory) Create(_ context.Context, space *models.LearningSpace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	space.ID = domain.SpaceID(s.nextID)
	s.nextID++
	if space.CreatedAt.IsZero() {
		space.CreatedAt = time.Now()
	}
	space.CreatedAt = space.CreatedAt.UTC()
	s.spaces[space.ID] = *space
	return nil
}

func (s *InMemory) FindActive(_ context.Context, id domain.SpaceID) (*models.LearningSpace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	space, ok := s.spaces[id]
	if !ok || space.IsDeleted {
		return nil, fmt.Errorf("learning space %d: %w", id, sentinel.ErrNotFound)
	}
	return &space, nil
}

func (s *InMemory) Exists(ctx context.Context, id domain.SpaceID) (bool, error) {
	_, err := s.FindActive(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *InMemory) MarkDeleted(_ context.Context, id domain.SpaceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	space, ok := s.spaces[id]
	if !ok || space.IsDeleted {
		return fmt.Errorf("learning space %d: %w", id, sentinel.ErrNotFound)
	}
	space.IsDeleted = true
	s.spaces[id] = space
	return nil
}
