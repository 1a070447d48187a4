// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

/*
Package query derives filtered, paginated views over a cached dataset.

Everything here is pure: functions take the full item sequence and return new
slices without touching the input. Filtering is stable, so the newest-first
order established by the cache carries through to every page.
*/
package query

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/aanchalalytcs/showcase/internal/core/record"
	"github.com/aanchalalytcs/showcase/pkg/pagination"
	"github.com/aanchalalytcs/showcase/pkg/slice"
)

// # Filtering

// Criteria selects a subset of items. Empty fields do not filter.
type Criteria struct {
	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
	// Search is matched case-insensitively as a substring of the item title.
	Search string `json:"search,omitempty"`
}

// IsZero reports whether the criteria select everything.
func (c Criteria) IsZero() bool {
	return c.Category == "" && c.Subcategory == "" && strings.TrimSpace(c.Search) == ""
}

// Filter returns the items matching c in their original relative order.
// The result is never nil.
func Filter[T record.Item](items []T, c Criteria) []T {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(c.Search))

	return slice.Filter(items, func(item T) bool {
		facets := item.Facets()
		if c.Category != "" && facets.Category != c.Category {
			return false
		}
		if c.Subcategory != "" && facets.Subcategory != c.Subcategory {
			return false
		}
		if needle != "" && !strings.Contains(fold.String(item.Title()), needle) {
			return false
		}
		return true
	})
}

// # Pagination

// Page is one window of a filtered sequence.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	Size       int `json:"size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Meta converts the page into the response envelope metadata.
func (p Page[T]) Meta() pagination.Meta {
	return pagination.NewMeta(p.Page, p.Size, p.Total)
}

// Paginate returns the 1-based page of the given size. Pages outside
// [1, TotalPages] yield an empty slice, never an error. TotalPages is at least 1.
func Paginate[T any](items []T, size, page int) Page[T] {
	if size < 1 {
		size = pagination.DefaultLimit
	}

	result := Page[T]{
		Items:      []T{},
		Page:       page,
		Size:       size,
		Total:      len(items),
		TotalPages: pagination.TotalPages(len(items), size),
	}
	if page < 1 {
		return result
	}

	start, end := pagination.Params{Page: page, Limit: size}.Bounds(len(items))
	if start < end {
		result.Items = slices.Clone(items[start:end])
	}
	return result
}

// # Vocabulary

// Vocabulary lists the distinct non-empty category values of a dataset.
type Vocabulary struct {
	Categories    []string `json:"categories"`
	Subcategories []string `json:"subcategories"`
}

// DeriveVocabulary collects the distinct non-empty categories and
// subcategories of items. Output is sorted so responses are stable.
func DeriveVocabulary[T record.Item](items []T) Vocabulary {
	facets := slice.Map(items, func(item T) record.Facets { return item.Facets() })

	categories := slice.Distinct(slice.Map(facets, func(f record.Facets) string { return f.Category }))
	subcategories := slice.Distinct(slice.Map(facets, func(f record.Facets) string { return f.Subcategory }))
	slices.Sort(categories)
	slices.Sort(subcategories)

	return Vocabulary{Categories: categories, Subcategories: subcategories}
}
