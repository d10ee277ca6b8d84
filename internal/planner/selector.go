package planner

import (
	"math/rand"

	"github.com/larderhq/larder/internal/domain"
)

// Selector picks recipes for plan days using an injectable random
// source, so tests can seed it and assert outcomes deterministically.
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a Selector over the given random source.
func NewSelector(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// Pick chooses one recipe uniformly at random from compatible.
//
// When excludeID names a recipe inside the set and at least one
// alternative remains, that recipe is never chosen — a swap must not hand
// back the same dish. When exclusion would empty the set, the full set is
// used instead: repeating the recipe beats leaving the day unassigned.
// An empty set returns nil, the valid unassigned outcome.
func (s *Selector) Pick(compatible []domain.Recipe, excludeID *int64) *domain.Recipe {
	if len(compatible) == 0 {
		return nil
	}

	candidates := compatible
	if excludeID != nil {
		trimmed := make([]domain.Recipe, 0, len(compatible))
		for _, r := range compatible {
			if r.ID != *excludeID {
				trimmed = append(trimmed, r)
			}
		}
		if len(trimmed) > 0 {
			candidates = trimmed
		}
	}

	chosen := candidates[s.rng.Intn(len(candidates))]
	return &chosen
}
