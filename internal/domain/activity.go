package domain

import (
	"strings"
	"time"
)

// Activity represents a bookable park experience (game drive, camping, ...)
type Activity struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DaySpanningPolicy decides which activities occupy the whole day for capacity purposes
// Activities are matched by slug, case-insensitively
type DaySpanningPolicy struct {
	slugs map[string]struct{}
}

// NewDaySpanningPolicy creates a policy from a list of activity slugs
func NewDaySpanningPolicy(slugs []string) DaySpanningPolicy {
	policy := DaySpanningPolicy{slugs: make(map[string]struct{}, len(slugs))}
	for _, slug := range slugs {
		slug = normalizeSlug(slug)
		if slug != "" {
			policy.slugs[slug] = struct{}{}
		}
	}
	return policy
}

// IsDaySpanning returns true if the activity slug belongs to a day-spanning category
func (p DaySpanningPolicy) IsDaySpanning(slug string) bool {
	_, ok := p.slugs[normalizeSlug(slug)]
	return ok
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
