package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uims/internal/component/mapper"
	"uims/internal/component/models"
	dErrors "uims/pkg/domain-errors"
)

func TestInMemoryRunInTxRestoresOnError(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()
	draft, err := mapper.Parse(models.ComponentInput{
		Orientation: "North", Width: 1, Length: 1, Height: 1,
		Details: models.WhiteboardInput{MarkerColor: "Red"},
	})
	require.NoError(t, err)

	kept, err := store.Create(ctx, 1, draft)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := store.Create(ctx, 1, draft); err != nil {
			return err
		}
		if err := store.MarkDeleted(ctx, kept.ID); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	found, err := store.FindActive(ctx, kept.ID)
	require.NoError(t, err)
	assert.Equal(t, kept, found)

	next, err := store.Create(ctx, 1, draft)
	require.NoError(t, err)
	assert.Equal(t, kept.ID+1, next.ID, "ids handed out by a rolled back unit of work are reused")
}

func TestInMemoryReadsThroughMapper(t *testing.T) {
	store := NewInMemory()
	store.PutRow(mapper.Row{ID: 3, SpaceID: 1, Orientation: "North", Width: 1, Length: 1, Height: 1})

	_, err := store.FindActive(context.Background(), 3)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeCorruptData))
}
