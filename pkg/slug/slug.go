// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

// Package slug turns free-form labels into file-name safe ASCII.
//
// # Usage
//
// Exported reports are named after the active category filter, so
// "Power BI" downloads as "project_report-power-bi.csv". Category labels come
// from the remote sheet and can carry accents, slashes or arbitrary length.
package slug

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength caps a qualifier so a long category cannot produce a file name
// that browsers or object stores truncate.
const MaxLength = 48

// From converts s into lowercase ASCII words joined by single hyphens.
//
// Accents are stripped after NFD decomposition; any other rune that is not an
// ASCII letter or digit separates words. The result is cut to MaxLength on a
// word boundary.
func From(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}

	return truncate(b.String(), MaxLength)
}

// truncate cuts s to at most n bytes, backing off to the last hyphen so no
// word is split. A single word longer than n is cut hard.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := s[:n]
	if s[n] == '-' {
		return cut
	}
	if i := strings.LastIndexByte(cut, '-'); i > 0 {
		return cut[:i]
	}
	return cut
}

// Filename joins base and the slug of qualifier with a hyphen and appends ext.
// An empty qualifier slug leaves just base and ext.
func Filename(base, qualifier, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	name := base
	if s := From(qualifier); s != "" {
		name += "-" + s
	}
	return name + "." + ext
}

// Stem returns name without its extension.
func Stem(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}
