// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

// Package query parses list-shaped values carried in query strings and in the
// spreadsheet's comma-delimited columns.
package query

import "strings"

// StringSlice parses a single comma-separated string into a trimmed slice of
// strings. Empty segments are dropped; an empty input yields nil.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// JoinStrings is the inverse of [StringSlice]: it trims every entry, drops
// empty ones and joins the rest with commas.
func JoinStrings(vals []string) string {
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		if clean := strings.TrimSpace(v); clean != "" {
			parts = append(parts, clean)
		}
	}
	return strings.Join(parts, ",")
}
