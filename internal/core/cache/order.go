// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package cache

import (
	"slices"
	"strings"
	"time"

	"github.com/aanchalalytcs/showcase/internal/core/record"
)

// stampLayouts are the timestamp renderings the spreadsheet has been seen to emit.
var stampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006 15:04:05",
}

type sortKey struct {
	rank int // 0 parsed time, 1 unparsed text, 2 empty
	at   time.Time
	text string
}

func keyOf(stamp string) sortKey {
	stamp = strings.TrimSpace(stamp)
	if stamp == "" {
		return sortKey{rank: 2}
	}
	for _, layout := range stampLayouts {
		if at, err := time.Parse(layout, stamp); err == nil {
			return sortKey{rank: 0, at: at}
		}
	}
	return sortKey{rank: 1, text: stamp}
}

// SortNewestFirst orders items by timestamp, newest first, keeping the input
// order among equal stamps. Parseable timestamps sort before unparseable ones
// (which compare as text) and empty timestamps sort last.
func SortNewestFirst[T record.Item](items []T) []T {
	type keyed struct {
		item T
		key  sortKey
	}

	pairs := make([]keyed, len(items))
	for i, item := range items {
		pairs[i] = keyed{item: item, key: keyOf(item.Stamp())}
	}

	slices.SortStableFunc(pairs, func(a, b keyed) int {
		if a.key.rank != b.key.rank {
			return a.key.rank - b.key.rank
		}
		switch a.key.rank {
		case 0:
			return b.key.at.Compare(a.key.at)
		case 1:
			return strings.Compare(b.key.text, a.key.text)
		}
		return 0
	})

	sorted := make([]T, len(pairs))
	for i, pair := range pairs {
		sorted[i] = pair.item
	}
	return sorted
}
