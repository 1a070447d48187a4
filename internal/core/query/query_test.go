// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package query_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanchalalytcs/showcase/internal/core/query"
	"github.com/aanchalalytcs/showcase/internal/core/record"
)

// dataset builds 25 records: 8 in EXCEL, 9 in POWER BI, 8 in PYTHON.
func dataset() []record.Record {
	categories := []string{"POWER BI", "EXCEL", "PYTHON"}
	subcategories := []string{"Sales", "HR", "Finance"}

	records := make([]record.Record, 0, 25)
	for i := range 25 {
		records = append(records, record.Record{
			ID:          fmt.Sprintf("%d", i+1),
			Heading:     fmt.Sprintf("Dashboard %d", i+1),
			Category:    categories[i%3],
			Subcategory: subcategories[(i/3)%3],
		})
	}
	return records
}

/*
TestPaginate_FilteredScenario filters 25 records to one category of 8 and
reads page 2 with a page size of 5.
*/
func TestPaginate_FilteredScenario(t *testing.T) {
	filtered := query.Filter(dataset(), query.Criteria{Category: "EXCEL"})
	require.Len(t, filtered, 8)

	page := query.Paginate(filtered, 5, 2)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 3)
	assert.Equal(t, filtered[5:8], page.Items)
}

/*
TestFilter_Subset checks every filter combination yields a matching, ordered subset.
*/
func TestFilter_Subset(t *testing.T) {
	all := dataset()
	combos := []query.Criteria{
		{},
		{Category: "EXCEL"},
		{Subcategory: "HR"},
		{Category: "PYTHON", Subcategory: "Finance"},
		{Category: "EXCEL", Subcategory: "Nope"},
	}

	for _, criteria := range combos {
		t.Run(fmt.Sprintf("%+v", criteria), func(t *testing.T) {
			result := query.Filter(all, criteria)
			assert.NotNil(t, result)

			last := -1
			for _, item := range result {
				if criteria.Category != "" {
					assert.Equal(t, criteria.Category, item.Category)
				}
				if criteria.Subcategory != "" {
					assert.Equal(t, criteria.Subcategory, item.Subcategory)
				}
				index := indexOf(all, item.ID)
				assert.Greater(t, index, last, "relative order must be preserved")
				last = index
			}
		})
	}
}

func indexOf(records []record.Record, id string) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

/*
TestFilter_Search matches headings case-insensitively, including non-ASCII text.
*/
func TestFilter_Search(t *testing.T) {
	records := []record.Record{
		{ID: "1", Heading: "Sales Dashboard"},
		{ID: "2", Heading: "HR Attrition"},
		{ID: "3", Heading: "STRASSE Traffic"},
		{ID: "4", Heading: "Café Revenue"},
	}

	tests := []struct {
		search string
		want   []string
	}{
		{"dashboard", []string{"1"}},
		{"  HR  ", []string{"2"}},
		{"strasse", []string{"3"}},
		{"CAFÉ", []string{"4"}},
		{"", []string{"1", "2", "3", "4"}},
		{"zzz", []string{}},
	}

	for _, tt := range tests {
		result := query.Filter(records, query.Criteria{Search: tt.search})
		ids := []string{}
		for _, r := range result {
			ids = append(ids, r.ID)
		}
		assert.Equal(t, tt.want, ids, "search=%q", tt.search)
	}
}

/*
TestPaginate_Bounds covers empty lists and pages outside the range.
*/
func TestPaginate_Bounds(t *testing.T) {
	empty := query.Paginate([]record.Record{}, 10, 1)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Empty(t, empty.Items)
	assert.NotNil(t, empty.Items)

	items := dataset()
	assert.Empty(t, query.Paginate(items, 10, 4).Items)
	assert.Empty(t, query.Paginate(items, 10, 0).Items)
	assert.Len(t, query.Paginate(items, 10, 3).Items, 5)

	for n := 0; n <= 30; n++ {
		for p := 1; p <= 7; p++ {
			want := max(1, (n+p-1)/p)
			assert.Equal(t, want, query.Paginate(make([]int, n), p, 1).TotalPages, "n=%d p=%d", n, p)
		}
	}
}

/*
TestState_Transitions checks the reset rules of the list view state.
*/
func TestState_Transitions(t *testing.T) {
	state := query.NewState()
	state.SetSubcategory("HR")
	state.SetPage(4)

	criteria, page := state.Snapshot()
	assert.Equal(t, "HR", criteria.Subcategory)
	assert.Equal(t, 4, page)

	state.SetCategory("EXCEL")
	criteria, page = state.Snapshot()
	assert.Equal(t, query.Criteria{Category: "EXCEL"}, criteria)
	assert.Equal(t, 1, page)

	state.SetPage(3)
	state.SetSearch("sales")
	_, page = state.Snapshot()
	assert.Equal(t, 1, page)

	state.SetPage(-5)
	_, page = state.Snapshot()
	assert.Equal(t, 1, page)

	state.Reset()
	criteria, _ = state.Snapshot()
	assert.True(t, criteria.IsZero())
}

/*
TestView applies the state to a dataset.
*/
func TestView(t *testing.T) {
	state := query.NewState()
	state.SetCategory("EXCEL")
	state.SetPage(2)

	page, filtered := query.View(state, dataset(), 5)
	assert.Len(t, filtered, 8)
	assert.Len(t, page.Items, 3)
	assert.Equal(t, 2, page.Meta().Page)
	assert.Equal(t, 8, page.Meta().Total)
}

/*
TestDeriveVocabulary returns distinct non-empty values.
*/
func TestDeriveVocabulary(t *testing.T) {
	records := []record.Record{
		{Category: "EXCEL", Subcategory: "Sales"},
		{Category: "PYTHON", Subcategory: ""},
		{Category: "EXCEL", Subcategory: "HR"},
		{Category: "", Subcategory: "Sales"},
	}

	vocabulary := query.DeriveVocabulary(records)
	assert.Equal(t, []string{"EXCEL", "PYTHON"}, vocabulary.Categories)
	assert.Equal(t, []string{"HR", "Sales"}, vocabulary.Subcategories)

	none := query.DeriveVocabulary([]record.Lead{{ID: "1"}})
	assert.Empty(t, none.Categories)
	assert.NotNil(t, none.Categories)
}

/*
TestState_Apply only transitions on values that differ from the current state.
*/
func TestState_Apply(t *testing.T) {
	state := query.NewState()
	category, subcategory := "EXCEL", "HR"
	page := 3

	state.Apply(query.Changes{Category: &category, Subcategory: &subcategory, Page: &page})
	criteria, current := state.Snapshot()
	assert.Equal(t, query.Criteria{Category: "EXCEL", Subcategory: "HR"}, criteria)
	assert.Equal(t, 3, current)

	// Same category again: subcategory and page survive.
	state.Apply(query.Changes{Category: &category})
	criteria, current = state.Snapshot()
	assert.Equal(t, "HR", criteria.Subcategory)
	assert.Equal(t, 3, current)

	// A new category resets the page; a subcategory sent with it is applied afterwards.
	other := "SQL"
	state.Apply(query.Changes{Category: &other, Subcategory: &subcategory})
	criteria, current = state.Snapshot()
	assert.Equal(t, query.Criteria{Category: "SQL", Subcategory: "HR"}, criteria)
	assert.Equal(t, 1, current)
}
