// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aanchalalytcs/showcase/pkg/query"
)

/*
TestStringSlice covers the comma-delimited image column.
*/
func TestStringSlice(t *testing.T) {
	assert.Nil(t, query.StringSlice(""))
	assert.Equal(t, []string{"https://a/1.png"}, query.StringSlice("https://a/1.png"))
	assert.Equal(t,
		[]string{"https://a/1.png", "https://a/2.png"},
		query.StringSlice(" https://a/1.png, ,https://a/2.png ,"),
	)
}

/*
TestJoinStrings round-trips through StringSlice.
*/
func TestJoinStrings(t *testing.T) {
	joined := query.JoinStrings([]string{" https://a/1.png", "", "https://a/2.png "})
	assert.Equal(t, "https://a/1.png,https://a/2.png", joined)
	assert.Equal(t, []string{"https://a/1.png", "https://a/2.png"}, query.StringSlice(joined))
	assert.Equal(t, "", query.JoinStrings(nil))
}
