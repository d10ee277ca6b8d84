package domain

import "time"

// Recipe is a dish the user can assign to plan days. TagIDs carries the
// recipe's tag memberships; display-only fields (URL, ImageURL,
// Description) are never inspected by the planning engine.
type Recipe struct {
	ID          int64
	Name        string
	URL         string
	ImageURL    string
	Description string
	TagIDs      []int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasTag reports whether the recipe carries the given tag.
func (r *Recipe) HasTag(tagID int64) bool {
	for _, id := range r.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

type Tag struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
