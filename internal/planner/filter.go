package planner

import "github.com/larderhq/larder/internal/domain"

// CompatibleRecipes returns the subset of pool satisfying the given tag
// constraint. An empty constraint accepts every recipe. A non-empty
// constraint accepts a recipe when its tag set intersects the constraint
// (OR semantics, one shared tag suffices); untagged recipes never pass a
// constrained day. The filter preserves pool order and has no side
// effects.
func CompatibleRecipes(pool []domain.Recipe, constraintTagIDs []int64) []domain.Recipe {
	if len(constraintTagIDs) == 0 {
		out := make([]domain.Recipe, len(pool))
		copy(out, pool)
		return out
	}

	var out []domain.Recipe
	for _, r := range pool {
		if intersects(r.TagIDs, constraintTagIDs) {
			out = append(out, r)
		}
	}
	return out
}

func intersects(a, b []int64) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
