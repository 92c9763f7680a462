package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uims/internal/platform/config"
	dErrors "uims/pkg/domain-errors"
	"uims/pkg/platform/sentinel"
	txcontext "uims/pkg/platform/tx"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	cfg := config.Database{
		Driver:         "sqlite",
		DSN:            "file:" + t.Name() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)",
		ConnectTimeout: time.Second,
	}
	db, dialect, err := Open(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.Equal(t, SQLite, dialect)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(context.Background(), db, dialect))
	return db
}

func TestDialectFor(t *testing.T) {
	for driver, want := range map[string]Dialect{"postgres": Postgres, "pgx": Postgres, "sqlite": SQLite} {
		got, err := DialectFor(driver)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := DialectFor("mysql")
	assert.Error(t, err)
}

func TestBuilderPlaceholders(t *testing.T) {
	query, _, err := Postgres.Builder().Select("id").From("components").Where("id = ?", 1).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM components WHERE id = $1", query)

	query, _, err = SQLite.Builder().Select("id").From("components").Where("id = ?", 1).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM components WHERE id = ?", query)
}

func TestSplitStatements(t *testing.T) {
	stmts := SplitStatements(`
-- leading comment
CREATE TABLE a (id INT);

CREATE TABLE b (
    id INT -- trailing
);
`)
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE a (id INT)", stmts[0])
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, Migrate(context.Background(), db, SQLite))

	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('learning_spaces', 'components', 'component_audit')`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestTransactor(t *testing.T) {
	db := openSQLite(t)
	tr := NewTransactor(db, time.Second)
	ctx := context.Background()

	insert := func(ctx context.Context, name string) error {
		_, err := txcontext.Exec(ctx, db).ExecContext(ctx,
			`INSERT INTO learning_spaces (floor_id, name, capacity, created_at) VALUES (1, ?, 10, CURRENT_TIMESTAMP)`, name)
		return err
	}
	count := func() int {
		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM learning_spaces`).Scan(&n))
		return n
	}

	t.Run("commits on success", func(t *testing.T) {
		err := tr.RunInTx(ctx, func(ctx context.Context) error {
			_, ok := txcontext.From(ctx)
			assert.True(t, ok)
			return insert(ctx, "Room A")
		})
		require.NoError(t, err)
		assert.Equal(t, 1, count())
	})

	t.Run("rolls back every write on error", func(t *testing.T) {
		boom := errors.New("audit append failed")
		err := tr.RunInTx(ctx, func(ctx context.Context) error {
			if err := insert(ctx, "Room B"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, count())
	})

	t.Run("nested call joins outer transaction", func(t *testing.T) {
		err := tr.RunInTx(ctx, func(ctx context.Context) error {
			outer, _ := txcontext.From(ctx)
			return tr.RunInTx(ctx, func(ctx context.Context) error {
				inner, _ := txcontext.From(ctx)
				assert.Same(t, outer, inner)
				return nil
			})
		})
		require.NoError(t, err)
	})

	t.Run("cancelled context is a timeout", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := tr.RunInTx(cctx, func(context.Context) error { return nil })
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
	})
}

func TestClassify(t *testing.T) {
	assert.NoError(t, Classify(nil))
	assert.ErrorIs(t, Classify(sql.ErrNoRows), sentinel.ErrNotFound)
	assert.ErrorIs(t, Classify(fmt.Errorf("query: %w", context.DeadlineExceeded)), sentinel.ErrUnavailable)
	assert.ErrorIs(t, Classify(&pq.Error{Code: "23505"}), sentinel.ErrConflict)
	assert.ErrorIs(t, Classify(&pgconn.PgError{Code: "23503"}), sentinel.ErrConflict)

	other := errors.New("syntax error")
	assert.Equal(t, other, Classify(other))

	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsForeignKeyViolation(&pq.Error{Code: "23505"}))
}
