package policy

// FilterAll disables a filter dimension.
const FilterAll = "all"

// Filters is transient view state, never persisted with content.
type Filters struct {
	Category   string // "all" or a category key
	Visibility string // "all", "public" or "private"; admin viewers only
}

// Listable is what the projection needs from a writing.
type Listable interface {
	Resource
	CategoryKey() string
}

// Project computes the visible, filtered subset of a collection for a
// viewer. Stage one applies the viewer's list scope, stage two the
// category and visibility filters, in that order, so filter values can
// never surface writings the scope forbids. Non-admin viewers always
// get their full allowed scope; the visibility filter is an admin-only
// control.
func Project[T Listable](items []T, v Viewer, f Filters) []T {
	scope := ScopeFor(v)

	visible := make([]T, 0, len(items))
	for _, item := range items {
		if scope.Allows(v, item) {
			visible = append(visible, item)
		}
	}

	out := make([]T, 0, len(visible))
	for _, item := range visible {
		if f.Category != "" && f.Category != FilterAll && item.CategoryKey() != f.Category {
			continue
		}
		if v.IsAdmin() && f.Visibility != "" && f.Visibility != FilterAll {
			wantPublic := f.Visibility == "public"
			if item.IsPublic() != wantPublic {
				continue
			}
		}
		out = append(out, item)
	}

	return out
}
