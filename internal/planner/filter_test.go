package planner

import (
	"testing"

	"github.com/larderhq/larder/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompatibleRecipes_ConstraintTruthTable(t *testing.T) {
	pool := []domain.Recipe{
		{ID: 1, Name: "salmon", TagIDs: []int64{10, 20}},
		{ID: 2, Name: "curry", TagIDs: []int64{20}},
		{ID: 3, Name: "toast", TagIDs: nil},
	}

	// Constrained day on tag 10: only the recipe sharing that tag passes;
	// the untagged recipe never passes.
	got := CompatibleRecipes(pool, []int64{10})
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	// Unconstrained day: everything passes, untagged included.
	got = CompatibleRecipes(pool, nil)
	require.Len(t, got, 3)
}

func TestCompatibleRecipes_OrSemanticsAcrossTags(t *testing.T) {
	pool := []domain.Recipe{
		{ID: 1, TagIDs: []int64{10}},
		{ID: 2, TagIDs: []int64{20}},
		{ID: 3, TagIDs: []int64{30}},
	}

	// One shared tag suffices; the recipe does not need every constraint tag.
	got := CompatibleRecipes(pool, []int64{10, 20})
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
}

func TestCompatibleRecipes_PreservesPoolOrder(t *testing.T) {
	pool := []domain.Recipe{
		{ID: 5, TagIDs: []int64{10}},
		{ID: 2, TagIDs: []int64{10}},
		{ID: 9, TagIDs: []int64{10}},
	}

	got := CompatibleRecipes(pool, []int64{10})
	require.Len(t, got, 3)
	assert.Equal(t, int64(5), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
	assert.Equal(t, int64(9), got[2].ID)
}

func TestCompatibleRecipes_EmptyPool(t *testing.T) {
	assert.Empty(t, CompatibleRecipes(nil, []int64{10}))
	assert.Empty(t, CompatibleRecipes(nil, nil))
}

func TestCompatibleRecipes_DoesNotMutatePool(t *testing.T) {
	pool := []domain.Recipe{
		{ID: 1, TagIDs: []int64{10}},
		{ID: 2, TagIDs: []int64{20}},
	}
	_ = CompatibleRecipes(pool, []int64{10})

	assert.Equal(t, int64(1), pool[0].ID)
	assert.Equal(t, int64(2), pool[1].ID)
}
