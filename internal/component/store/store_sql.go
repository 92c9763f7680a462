package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"golang.org/x/sync/errgroup"

	"uims/internal/component/mapper"
	"uims/internal/component/models"
	"uims/internal/platform/database"
	"uims/pkg/domain"
	"uims/pkg/platform/pagination"
	"uims/pkg/platform/sentinel"
	txcontext "uims/pkg/platform/tx"
)

const componentsTable = "components"

// SQLStore persists components in the components table. Every method joins
// the transaction carried by ctx when there is one.
type SQLStore struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// NewSQL creates a store for db speaking dialect.
func NewSQL(db *sql.DB, dialect database.Dialect) *SQLStore {
	return &SQLStore{db: db, sb: dialect.Builder()}
}

func (s *SQLStore) exec(ctx context.Context) txcontext.Executor {
	return txcontext.Exec(ctx, s.db)
}

// Create inserts draft into spaceID, then derives and stores the display id
// from the generated id.
func (s *SQLStore) Create(ctx context.Context, spaceID domain.SpaceID, draft models.Draft) (models.Component, error) {
	r := mapper.ToRow(draft.Materialize(0, spaceID, ""))

	values := r.MutableValues()
	values["space_id"] = r.SpaceID
	values["component_type"] = r.ComponentType
	values["display_id"] = ""

	query, args, err := s.sb.Insert(componentsTable).SetMap(values).Suffix("RETURNING id").ToSql()
	if err != nil {
		return models.Component{}, fmt.Errorf("build insert component: %w", err)
	}
	var id int64
	if err := s.exec(ctx).QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return models.Component{}, fmt.Errorf("insert component: %w", database.Classify(err))
	}

	componentID := domain.ComponentID(id)
	displayID := mapper.DisplayID(draft.Kind(), componentID)
	query, args, err = s.sb.Update(componentsTable).
		Set("display_id", displayID).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Component{}, fmt.Errorf("build assign display id: %w", err)
	}
	if _, err := s.exec(ctx).ExecContext(ctx, query, args...); err != nil {
		return models.Component{}, fmt.Errorf("assign display id to component %d: %w", id, database.Classify(err))
	}

	return draft.Materialize(componentID, spaceID, displayID), nil
}

// FindActive returns the component with id unless it is absent or deleted.
func (s *SQLStore) FindActive(ctx context.Context, id domain.ComponentID) (models.Component, error) {
	query, args, err := s.sb.Select(mapper.Columns...).
		From(componentsTable).
		Where(sq.Eq{"id": int64(id), "is_deleted": false}).
		ToSql()
	if err != nil {
		return models.Component{}, fmt.Errorf("build find component: %w", err)
	}

	var r mapper.Row
	if err := s.exec(ctx).QueryRowContext(ctx, query, args...).Scan(r.ScanTargets()...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Component{}, fmt.Errorf("component %d: %w", id, sentinel.ErrNotFound)
		}
		return models.Component{}, fmt.Errorf("find component %d: %w", id, database.Classify(err))
	}
	return mapper.FromRow(r)
}

// Update replaces the mutable columns of an active component. Identity, space,
// discriminator and display id are never written.
func (s *SQLStore) Update(ctx context.Context, c models.Component) error {
	r := mapper.ToRow(c)
	query, args, err := s.sb.Update(componentsTable).
		SetMap(r.MutableValues()).
		Where(sq.Eq{"id": r.ID, "component_type": r.ComponentType, "is_deleted": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update component: %w", err)
	}
	return s.execOne(ctx, c.ID, "update", query, args)
}

// MarkDeleted sets the deleted flag of an active component.
func (s *SQLStore) MarkDeleted(ctx context.Context, id domain.ComponentID) error {
	query, args, err := s.sb.Update(componentsTable).
		Set("is_deleted", true).
		Where(sq.Eq{"id": int64(id), "is_deleted": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete component: %w", err)
	}
	return s.execOne(ctx, id, "delete", query, args)
}

func (s *SQLStore) execOne(ctx context.Context, id domain.ComponentID, op, query string, args []any) error {
	res, err := s.exec(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s component %d: %w", op, id, database.Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s component %d: %w", op, id, err)
	}
	if n == 0 {
		return fmt.Errorf("component %d: %w", id, sentinel.ErrNotFound)
	}
	return nil
}

func (s *SQLStore) where(f Filter) sq.And {
	where := sq.And{sq.Eq{"is_deleted": false}}
	if f.SpaceID != nil {
		where = append(where, sq.Eq{"space_id": int64(*f.SpaceID)})
	}
	if f.Search != "" {
		where = append(where, sq.Expr(`LOWER(display_id) LIKE ? ESCAPE '\'`, likePattern(f.Search)))
	}
	return where
}

// List returns one page of active components matching f, ordered by id, with
// the total number of matches. Outside a transaction the count and the page
// are read concurrently from the pool.
func (s *SQLStore) List(ctx context.Context, f Filter, page pagination.Page) (pagination.Result[models.Component], error) {
	where := s.where(f)

	countQuery, countArgs, err := s.sb.Select("COUNT(*)").From(componentsTable).Where(where).ToSql()
	if err != nil {
		return pagination.Result[models.Component]{}, fmt.Errorf("build count components: %w", err)
	}
	pageQuery, pageArgs, err := s.sb.Select(mapper.Columns...).
		From(componentsTable).
		Where(where).
		OrderBy("id ASC").
		Limit(uint64(page.Limit())).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return pagination.Result[models.Component]{}, fmt.Errorf("build list components: %w", err)
	}

	var (
		total int
		rows  []mapper.Row
	)
	count := func(ctx context.Context) error {
		if err := s.exec(ctx).QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
			return fmt.Errorf("count components: %w", database.Classify(err))
		}
		return nil
	}
	load := func(ctx context.Context) error {
		var err error
		rows, err = s.queryRows(ctx, pageQuery, pageArgs)
		return err
	}

	if _, inTx := txcontext.From(ctx); inTx {
		if err := count(ctx); err != nil {
			return pagination.Result[models.Component]{}, err
		}
		if err := load(ctx); err != nil {
			return pagination.Result[models.Component]{}, err
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return count(gctx) })
		g.Go(func() error { return load(gctx) })
		if err := g.Wait(); err != nil {
			return pagination.Result[models.Component]{}, err
		}
	}

	items := make([]models.Component, 0, len(rows))
	for _, r := range rows {
		c, err := mapper.FromRow(r)
		if err != nil {
			return pagination.Result[models.Component]{}, err
		}
		items = append(items, c)
	}
	return pagination.NewResult(items, total, page), nil
}

func (s *SQLStore) queryRows(ctx context.Context, query string, args []any) ([]mapper.Row, error) {
	rows, err := s.exec(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", database.Classify(err))
	}
	defer rows.Close()

	var out []mapper.Row
	for rows.Next() {
		var r mapper.Row
		if err := rows.Scan(r.ScanTargets()...); err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate components: %w", database.Classify(err))
	}
	return out, nil
}
