package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// EventFilters is the parsed filter set of a list request. Zero-valued
// dimensions impose no constraint; provided ones combine with AND.
type EventFilters struct {
	Search   string
	Category string
	Date     *time.Time
	Location string
}

func (f EventFilters) apply(db *gorm.DB) *gorm.DB {
	if tokens := searchTokens(f.Search); len(tokens) > 0 {
		clauses := make([]string, 0, len(tokens))
		args := make([]interface{}, 0, len(tokens)*2)
		for _, token := range tokens {
			// Padding both sides makes the LIKE a whole-word match, so a
			// token never matches the middle of a longer word.
			pattern := "% " + token + " %"
			clauses = append(clauses,
				"((' ' || lower(title) || ' ') LIKE ? OR (' ' || lower(description) || ' ') LIKE ?)")
			args = append(args, pattern, pattern)
		}
		db = db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}

	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}

	if f.Date != nil {
		start, end := dayRange(*f.Date)
		db = db.Where("date >= ? AND date < ?", start, end)
	}

	if f.Location != "" {
		db = db.Where("lower(location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}

	return db
}

// searchTokens lowercases and splits free-form search input; tokens match
// independently (OR) against title and description.
func searchTokens(search string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(search)))
}

// dayRange is the half-open calendar day [startOfDay, startOfDay+24h).
func dayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}
