// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aanchalalytcs/showcase/pkg/slice"
)

/*
TestFilter_PreservesOrder verifies stable filtering and a non-nil empty result.
*/
func TestFilter_PreservesOrder(t *testing.T) {
	in := []string{"EXCEL", "SQL", "EXCEL-2", "PowerBI"}
	out := slice.Filter(in, func(s string) bool { return strings.HasPrefix(s, "EXCEL") })
	assert.Equal(t, []string{"EXCEL", "EXCEL-2"}, out)

	none := slice.Filter(in, func(string) bool { return false })
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

/*
TestDistinct drops duplicates and zero values.
*/
func TestDistinct(t *testing.T) {
	assert.Equal(t, []string{"SQL", "EXCEL"}, slice.Distinct([]string{"SQL", "", "EXCEL", "SQL"}))
	assert.Empty(t, slice.Distinct([]string{"", ""}))
}

/*
TestMap transforms every element and keeps nil as nil.
*/
func TestMap(t *testing.T) {
	lengths := slice.Map([]string{"a", "bb"}, func(s string) int { return len(s) })
	assert.Equal(t, []int{1, 2}, lengths)
	assert.Nil(t, slice.Map[string, int](nil, func(s string) int { return len(s) }))
}
