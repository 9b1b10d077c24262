package postgres

import (
	"strings"

	"github.com/flixkit/catalog/internal/domain/repository"
)

// orderClause builds a safe ORDER BY fragment from a search query. Sort
// fields are resolved through an allow-list of column names; anything else
// falls back to the given default column. Direction defaults to ascending.
func orderClause(query repository.SearchQuery, allowed map[string]string, fallback string) string {
	column, ok := allowed[strings.ToLower(query.Sort)]
	if !ok {
		column = fallback
	}

	direction := "ASC"
	if strings.EqualFold(query.Direction, "desc") {
		direction = "DESC"
	}

	return column + " " + direction
}

// likePattern wraps search terms for a case-insensitive substring match.
// Empty terms produce an empty pattern, which the queries treat as "match all".
func likePattern(terms string) string {
	if terms == "" {
		return ""
	}
	return "%" + terms + "%"
}
