package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "uims/pkg/domain-errors"
)

func TestNewPageRejectsContractViolations(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		index int
	}{
		{"zero size", 0, 1},
		{"negative size", -5, 1},
		{"zero index", 10, 0},
		{"negative index", 10, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPage(tt.size, tt.index)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
		})
	}
}

func TestWindow(t *testing.T) {
	page, err := NewPage(20, 3)
	require.NoError(t, err)
	assert.Equal(t, 40, page.Offset())
	assert.Equal(t, 20, page.Limit())
}

func TestOffsetSaturatesForHugeIndex(t *testing.T) {
	page, err := NewPage(20, math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, page.Offset())

	edge, err := NewPage(1, math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt-1, edge.Offset())

	r := Slice([]int{1, 2, 3}, page)
	assert.Empty(t, r.Items)
	assert.Equal(t, 3, r.TotalCount)
	assert.Equal(t, math.MaxInt, r.PageIndex)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(5, 2))
}

func TestSliceContiguousPages(t *testing.T) {
	all := []int{1, 2, 3, 4, 5}

	first := Slice(all, Page{Size: 2, Index: 1})
	second := Slice(all, Page{Size: 2, Index: 2})
	third := Slice(all, Page{Size: 2, Index: 3})
	beyond := Slice(all, Page{Size: 2, Index: 9})

	assert.Equal(t, []int{1, 2}, first.Items)
	assert.Equal(t, []int{3, 4}, second.Items)
	assert.Equal(t, []int{5}, third.Items)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 5, beyond.TotalCount)
	assert.Equal(t, 3, first.TotalPages)
}

func TestMapKeepsMetadata(t *testing.T) {
	r := NewResult([]int{1, 2}, 7, Page{Size: 2, Index: 1})
	mapped := Map(r, func(i int) string { return string(rune('a' + i)) })

	assert.Equal(t, []string{"b", "c"}, mapped.Items)
	assert.Equal(t, 7, mapped.TotalCount)
	assert.Equal(t, 4, mapped.TotalPages)
}
