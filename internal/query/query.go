// Package query filters and paginates ordered entity collections.
package query

import (
	"strings"

	"hostelcore/pkg/domain"
)

// Defaults applied by transports when the caller omits paging parameters.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Page is one window of a filtered collection.
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Predicate reports whether an item passes a filter.
type Predicate[T any] func(T) bool

// Paginate keeps the items matching every predicate, in input order, and
// returns the requested 1-indexed page of them.
func Paginate[T any](items []T, preds []Predicate[T], page, limit int) (Page[T], error) {
	if page < 1 {
		return Page[T]{}, domain.ErrValidation{Field: "page", Reason: "must be at least 1"}
	}
	if limit < 1 {
		return Page[T]{}, domain.ErrValidation{Field: "limit", Reason: "must be at least 1"}
	}
	filtered := Filter(items, preds...)
	total := len(filtered)
	out := Page[T]{
		Data:       []T{},
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}
	start := (page - 1) * limit
	if start >= total {
		return out, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	out.Data = append(out.Data, filtered[start:end]...)
	return out, nil
}

// Filter returns the items satisfying all predicates. Nil predicates are ignored.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	active := preds[:0:0]
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	out := make([]T, 0, len(items))
next:
	for _, item := range items {
		for _, p := range active {
			if !p(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}

// Map converts every page element, keeping the paging metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := Page[U]{Data: make([]U, 0, len(p.Data)), Total: p.Total, Page: p.Page, Limit: p.Limit, TotalPages: p.TotalPages}
	for _, v := range p.Data {
		out.Data = append(out.Data, fn(v))
	}
	return out
}

// Equals matches field(item) == want. An empty want matches everything.
func Equals[T any, V ~string](want V, field func(T) V) Predicate[T] {
	if want == "" {
		return nil
	}
	return func(item T) bool { return field(item) == want }
}

// EqualsFold is Equals with case-insensitive comparison.
func EqualsFold[T any](want string, field func(T) string) Predicate[T] {
	if want == "" {
		return nil
	}
	return func(item T) bool { return strings.EqualFold(field(item), want) }
}

// PtrEquals matches a nullable reference against want.
func PtrEquals[T any](want string, field func(T) *string) Predicate[T] {
	if want == "" {
		return nil
	}
	return func(item T) bool {
		v := field(item)
		return v != nil && *v == want
	}
}

// Search matches items where any of the fields contains term, ignoring case.
func Search[T any](term string, fields ...func(T) string) Predicate[T] {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	return func(item T) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(item)), term) {
				return true
			}
		}
		return false
	}
}

// Intersects matches items whose values share at least one element with want.
func Intersects[T any](want []string, field func(T) []string) Predicate[T] {
	if len(want) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(want))
	for _, w := range want {
		set[w] = struct{}{}
	}
	return func(item T) bool {
		for _, v := range field(item) {
			if _, ok := set[v]; ok {
				return true
			}
		}
		return false
	}
}

// In matches items whose field is one of want.
func In[T any, V ~string](want []V, field func(T) V) Predicate[T] {
	if len(want) == 0 {
		return nil
	}
	return func(item T) bool {
		v := field(item)
		for _, w := range want {
			if v == w {
				return true
			}
		}
		return false
	}
}

// Status matches records in the given lifecycle status.
func Status[T any](want domain.Status, field func(T) domain.Status) Predicate[T] {
	return Equals(want, field)
}

// Bool matches a boolean-valued field when want is set.
func Bool[T any](want *bool, field func(T) bool) Predicate[T] {
	if want == nil {
		return nil
	}
	return func(item T) bool { return field(item) == *want }
}
