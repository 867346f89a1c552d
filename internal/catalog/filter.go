// Package catalog narrows a candidate set of listings by area, unit type,
// rent range and free text. One pure function serves both the public browse
// view and the admin listings view; the views differ only in the Filter they
// pass and in how they pre-restrict the candidate set.
package catalog

import (
	"sort"
	"strings"

	"github.com/omkar-s8203/pune-home-circle/internal/models"
)

// Filter describes a conjunctive listing predicate. Zero values disable a criterion:
// empty Area/PropertyType/Query/Status match everything, MaxRent == 0 means
// no upper bound. Callers wanting the configured global bounds pass them in
// explicitly so an untouched range slider stays a no-op.
type Filter struct {
	Area         string
	PropertyType string
	MinRent      int
	MaxRent      int
	Query        string
	Status       models.PropertyStatus

	// MatchOwnerEmail extends the free-text match to the owner's email.
	// Only the admin view sets this; it requires profiles to be joined.
	MatchOwnerEmail bool
}

// Apply returns the listings satisfying every active criterion, ordered by
// creation time descending. The full filtered set is returned with no
// pagination; callers own the scaling ceiling that implies.
func Apply(properties []models.Property, f Filter) []models.Property {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		if f.Area != "" && p.Area != f.Area {
			continue
		}
		if f.PropertyType != "" && p.PropertyType != f.PropertyType {
			continue
		}
		if p.Rent < f.MinRent {
			continue
		}
		if f.MaxRent > 0 && p.Rent > f.MaxRent {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if query != "" && !matchesQuery(p, query, f.MatchOwnerEmail) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out
}

func matchesQuery(p models.Property, query string, matchOwnerEmail bool) bool {
	if strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.Area), query) {
		return true
	}
	if matchOwnerEmail && p.Profile != nil &&
		strings.Contains(strings.ToLower(p.Profile.Email), query) {
		return true
	}
	return false
}
