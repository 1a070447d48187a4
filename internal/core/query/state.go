// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package query

import (
	"sync"

	"github.com/aanchalalytcs/showcase/internal/core/record"
)

// State is the view state of one list screen: the active criteria and page.
//
// Transitions follow the list UI rules. Choosing a category clears the
// subcategory, and any criteria change goes back to page 1. A subcategory is
// never checked against the category; mismatches simply match nothing.
type State struct {
	mu       sync.Mutex
	criteria Criteria
	page     int
}

// NewState returns a state on page 1 with no filters.
func NewState() *State {
	return &State{page: 1}
}

// Snapshot returns the current criteria and page.
func (s *State) Snapshot() (Criteria, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria, s.page
}

// SetCategory selects a category, clearing the subcategory and resetting the page.
func (s *State) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Category = category
	s.criteria.Subcategory = ""
	s.page = 1
}

// SetSubcategory selects a subcategory and resets the page.
func (s *State) SetSubcategory(subcategory string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Subcategory = subcategory
	s.page = 1
}

// SetSearch sets the free-text search and resets the page.
func (s *State) SetSearch(search string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Search = search
	s.page = 1
}

// SetPage moves to page. Values below 1 clamp to 1; values past the end are
// kept and render as an empty page.
func (s *State) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = max(page, 1)
}

// Changes are requested transitions. Nil fields are left alone.
type Changes struct {
	Category    *string
	Subcategory *string
	Search      *string
	Page        *int
}

// Apply runs the requested transitions in order (category, subcategory,
// search, page). A field equal to the current value is not a transition and
// does not reset the page.
func (s *State) Apply(changes Changes) {
	if changes.Category != nil {
		if criteria, _ := s.Snapshot(); *changes.Category != criteria.Category {
			s.SetCategory(*changes.Category)
		}
	}
	if changes.Subcategory != nil {
		if criteria, _ := s.Snapshot(); *changes.Subcategory != criteria.Subcategory {
			s.SetSubcategory(*changes.Subcategory)
		}
	}
	if changes.Search != nil {
		if criteria, _ := s.Snapshot(); *changes.Search != criteria.Search {
			s.SetSearch(*changes.Search)
		}
	}
	if changes.Page != nil {
		if _, page := s.Snapshot(); *changes.Page != page {
			s.SetPage(*changes.Page)
		}
	}
}

// Reset clears every filter and returns to page 1.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = Criteria{}
	s.page = 1
}

// View filters items with the current criteria and returns the current page.
func View[T record.Item](s *State, items []T, size int) (Page[T], []T) {
	criteria, page := s.Snapshot()
	filtered := Filter(items, criteria)
	return Paginate(filtered, size, page), filtered
}
