package repository

// SearchQuery describes a page request against any aggregate collection.
// Page is zero-based. Terms is matched as a case-insensitive substring over
// the aggregate's searchable fields; Sort must name an allow-listed column.
type SearchQuery struct {
	Page      int
	PerPage   int
	Terms     string
	Sort      string
	Direction string
}

// Offset returns the row offset for the requested page.
func (q SearchQuery) Offset() int {
	if q.Page < 0 {
		return 0
	}
	return q.Page * q.PerPage
}

// Page is one page of results with its paging metadata. It is a structural
// result, not owned by any aggregate.
type Page[T any] struct {
	CurrentPage int
	PerPage     int
	Total       int64
	Items       []T
}

// MapPage transforms the items of a page element-wise, preserving order and
// paging metadata. Every "list X" use case is a gateway call plus one MapPage,
// so no second query is needed to shape output records.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return Page[U]{
		CurrentPage: p.CurrentPage,
		PerPage:     p.PerPage,
		Total:       p.Total,
		Items:       items,
	}
}
