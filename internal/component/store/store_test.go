package store

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"uims/internal/component/mapper"
	"uims/internal/component/models"
	"uims/internal/platform/config"
	"uims/internal/platform/database"
	"uims/pkg/domain"
	"uims/pkg/platform/pagination"
	"uims/pkg/platform/sentinel"
)

// componentStore is the behaviour both implementations share.
type componentStore interface {
	Create(ctx context.Context, spaceID domain.SpaceID, draft models.Draft) (models.Component, error)
	FindActive(ctx context.Context, id domain.ComponentID) (models.Component, error)
	Update(ctx context.Context, c models.Component) error
	MarkDeleted(ctx context.Context, id domain.ComponentID) error
	List(ctx context.Context, f Filter, page pagination.Page) (pagination.Result[models.Component], error)
	AppendAudit(ctx context.Context, record models.AuditRecord) error
	ListAudit(ctx context.Context, id domain.ComponentID) ([]models.AuditRecord, error)
}

var (
	_ componentStore = (*InMemory)(nil)
	_ componentStore = (*SQLStore)(nil)
)

// StoreSuite runs the same behaviour checks against every implementation.
type StoreSuite struct {
	suite.Suite
	newStore func(t *testing.T) componentStore
	store    componentStore
	ctx      context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func(*testing.T) componentStore { return NewInMemory() }})
}

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func(t *testing.T) componentStore {
		return NewSQL(openSQLite(t), database.SQLite)
	}})
}

// openSQLite opens a private in-memory database with the schema applied and
// learning spaces 1 and 2 present.
func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	cfg := config.Database{
		Driver:         "sqlite",
		DSN:            "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)",
		ConnectTimeout: time.Second,
	}
	db, dialect, err := database.Open(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.Migrate(ctx, db, dialect); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, name := range []string{"Lab 1", "Lab 2"} {
		_, err := db.ExecContext(ctx,
			`INSERT INTO learning_spaces (floor_id, name, capacity, created_at) VALUES (1, ?, 20, ?)`,
			name, time.Now().UTC())
		if err != nil {
			t.Fatalf("seed space: %v", err)
		}
	}
	return db
}

func (s *StoreSuite) SetupTest() {
	s.store = s.newStore(s.T())
	s.ctx = context.Background()
}

func (s *StoreSuite) draft(in models.ComponentInput) models.Draft {
	d, err := mapper.Parse(in)
	s.Require().NoError(err)
	return d
}

func (s *StoreSuite) projector(content *string) models.Draft {
	return s.draft(models.ComponentInput{
		Orientation: "North",
		Width:       2, Length: 2, Height: 2,
		X: 1, Y: 1, Z: 0,
		Details: models.ProjectorInput{ProjectedHeight: 1.5, ProjectedWidth: 2, ProjectedContent: content},
	})
}

func (s *StoreSuite) whiteboard(color string) models.Draft {
	return s.draft(models.ComponentInput{
		Orientation: "East",
		Width:       3, Length: 0.2, Height: 1,
		X: -2.5, Y: 0, Z: 1,
		Details: models.WhiteboardInput{MarkerColor: color},
	})
}

func (s *StoreSuite) page(size, index int) pagination.Page {
	p, err := pagination.NewPage(size, index)
	s.Require().NoError(err)
	return p
}

func (s *StoreSuite) TestCreateAssignsIdentity() {
	first, err := s.store.Create(s.ctx, 1, s.projector(nil))
	s.Require().NoError(err)
	second, err := s.store.Create(s.ctx, 1, s.whiteboard("Red"))
	s.Require().NoError(err)

	s.Greater(int64(second.ID), int64(first.ID))
	s.Equal(mapper.DisplayID(models.KindProjector, first.ID), first.DisplayID)
	s.Equal(mapper.DisplayID(models.KindWhiteboard, second.ID), second.DisplayID)

	found, err := s.store.FindActive(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Equal(first, found)
}

func (s *StoreSuite) TestFindActive() {
	s.Run("unknown id", func() {
		_, err := s.store.FindActive(s.ctx, 9999)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("deleted component is invisible", func() {
		c, err := s.store.Create(s.ctx, 1, s.whiteboard("Blue"))
		s.Require().NoError(err)
		s.Require().NoError(s.store.MarkDeleted(s.ctx, c.ID))

		_, err = s.store.FindActive(s.ctx, c.ID)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *StoreSuite) TestUpdate() {
	content := "Math"
	c, err := s.store.Create(s.ctx, 2, s.projector(&content))
	s.Require().NoError(err)

	empty := ""
	next := s.projector(&empty)
	next.Position.Z = 4
	updated := next.ApplyTo(c)
	s.Require().NoError(s.store.Update(s.ctx, updated))

	found, err := s.store.FindActive(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(updated, found)
	s.Require().NotNil(found.Details.(models.Projector).ProjectedContent)
	s.Equal("", *found.Details.(models.Projector).ProjectedContent)
	s.Equal(c.DisplayID, found.DisplayID)

	s.Run("deleted component cannot be updated", func() {
		s.Require().NoError(s.store.MarkDeleted(s.ctx, c.ID))
		err := s.store.Update(s.ctx, updated)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *StoreSuite) TestMarkDeletedOnlyOnce() {
	c, err := s.store.Create(s.ctx, 1, s.whiteboard("Black"))
	s.Require().NoError(err)

	s.Require().NoError(s.store.MarkDeleted(s.ctx, c.ID))
	s.ErrorIs(s.store.MarkDeleted(s.ctx, c.ID), sentinel.ErrNotFound)
	s.ErrorIs(s.store.MarkDeleted(s.ctx, 4242), sentinel.ErrNotFound)
}

func (s *StoreSuite) TestListPagesInIDOrder() {
	var created []models.Component
	for i := 0; i < 5; i++ {
		c, err := s.store.Create(s.ctx, 1, s.whiteboard("Green"))
		s.Require().NoError(err)
		created = append(created, c)
	}
	_, err := s.store.Create(s.ctx, 2, s.projector(nil))
	s.Require().NoError(err)
	s.Require().NoError(s.store.MarkDeleted(s.ctx, created[4].ID))

	space := domain.SpaceID(1)
	filter := Filter{SpaceID: &space}

	first, err := s.store.List(s.ctx, filter, s.page(2, 1))
	s.Require().NoError(err)
	second, err := s.store.List(s.ctx, filter, s.page(2, 2))
	s.Require().NoError(err)
	third, err := s.store.List(s.ctx, filter, s.page(2, 3))
	s.Require().NoError(err)

	s.Equal(4, first.TotalCount)
	s.Equal(2, first.TotalPages)
	s.Equal(created[0:2], first.Items)
	s.Equal(created[2:4], second.Items)
	s.Empty(third.Items)
	s.Equal(4, third.TotalCount)

	all, err := s.store.List(s.ctx, Filter{}, s.page(10, 1))
	s.Require().NoError(err)
	s.Equal(5, all.TotalCount)
}

func (s *StoreSuite) TestListFarPastTheEndIsEmpty() {
	_, err := s.store.Create(s.ctx, 1, s.whiteboard("Blue"))
	s.Require().NoError(err)

	for _, size := range []int{1, 20, 200} {
		res, err := s.store.List(s.ctx, Filter{}, s.page(size, math.MaxInt))
		s.Require().NoError(err, "size %d", size)
		s.Empty(res.Items)
		s.Equal(1, res.TotalCount)
	}
}

func (s *StoreSuite) TestListSearch() {
	p, err := s.store.Create(s.ctx, 1, s.projector(nil))
	s.Require().NoError(err)
	w, err := s.store.Create(s.ctx, 1, s.whiteboard("Orange"))
	s.Require().NoError(err)

	s.Run("case-insensitive substring of the display id", func() {
		res, err := s.store.List(s.ctx, Filter{Search: "proj"}, s.page(10, 1))
		s.Require().NoError(err)
		s.Equal([]models.Component{p}, res.Items)

		res, err = s.store.List(s.ctx, Filter{Search: "wBd-"}, s.page(10, 1))
		s.Require().NoError(err)
		s.Equal([]models.Component{w}, res.Items)
	})

	s.Run("wildcards are literal", func() {
		res, err := s.store.List(s.ctx, Filter{Search: "%"}, s.page(10, 1))
		s.Require().NoError(err)
		s.Empty(res.Items)
		s.Equal(0, res.TotalCount)

		res, err = s.store.List(s.ctx, Filter{Search: "_"}, s.page(10, 1))
		s.Require().NoError(err)
		s.Empty(res.Items)
	})

	s.Run("unknown space yields an empty page", func() {
		space := domain.SpaceID(77)
		res, err := s.store.List(s.ctx, Filter{SpaceID: &space}, s.page(10, 1))
		s.Require().NoError(err)
		s.Empty(res.Items)
		s.Equal(0, res.TotalPages)
	})
}

func (s *StoreSuite) TestAuditAppendAndList() {
	content := "Chemistry"
	c, err := s.store.Create(s.ctx, 1, s.projector(&content))
	s.Require().NoError(err)

	snap := mapper.Snapshot(c)
	recordedAt := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	created := models.AuditRecord{
		ID: uuid.New(), ComponentID: c.ID, ComponentType: models.KindProjector,
		Action: models.ActionCreated, Snapshot: snap, RecordedAt: recordedAt,
	}
	deleted := created
	deleted.ID = uuid.New()
	deleted.Action = models.ActionDeleted
	deleted.RecordedAt = recordedAt.Add(time.Minute)

	s.Require().NoError(s.store.AppendAudit(s.ctx, created))
	s.Require().NoError(s.store.AppendAudit(s.ctx, deleted))
	s.Require().NoError(s.store.AppendAudit(s.ctx, models.AuditRecord{
		ID: uuid.New(), ComponentID: c.ID + 1, ComponentType: models.KindWhiteboard,
		Action: models.ActionCreated, RecordedAt: recordedAt,
	}))

	records, err := s.store.ListAudit(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(created, records[0])
	s.Equal(deleted, records[1])
	s.Nil(records[0].Snapshot.MarkerColor)

	none, err := s.store.ListAudit(s.ctx, 555)
	s.Require().NoError(err)
	s.Empty(none)
}
