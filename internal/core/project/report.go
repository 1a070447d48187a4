// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package project

import (
	"bytes"
	"cmp"
	"encoding/csv"
	"fmt"
	"slices"
	"time"

	"github.com/aanchalalytcs/showcase/internal/core/record"
	"github.com/aanchalalytcs/showcase/pkg/slug"
	"github.com/aanchalalytcs/showcase/pkg/uuid"
)

// ReportHeader is the first line of every exported report.
var ReportHeader = []string{"ID", "Timestamp", "Project Name", "Category", "Subcategory"}

const (
	reportBaseName    = "project_report"
	reportContentType = "text/csv; charset=utf-8"
	unknownLabel      = "Unknown"
	topSubcategories  = 5
)

// Report is a generated CSV export.
type Report struct {
	Filename string
	Body     []byte
	Rows     int
	// ArchiveKey is set when a copy was stored in object storage.
	ArchiveKey string
}

// EncodeCSV renders records as the report CSV: one header line plus one line
// per record, in the given order.
func EncodeCSV(records []record.Record) ([]byte, error) {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	if err := writer.Write(ReportHeader); err != nil {
		return nil, fmt.Errorf("project: write report header: %w", err)
	}
	for _, r := range records {
		row := []string{r.ID, r.Timestamp, r.Heading, r.Category, r.Subcategory}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("project: write report row %s: %w", r.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("project: flush report: %w", err)
	}
	return buffer.Bytes(), nil
}

// reportFilename names the download after the active category, if any.
func reportFilename(category string) string {
	return slug.Filename(reportBaseName, category, "csv")
}

// archiveKey places a report under reports/<yyyy>/<mm>/ with a unique suffix.
func archiveKey(filename string, at time.Time) string {
	return fmt.Sprintf("reports/%04d/%02d/%s-%s.csv", at.Year(), int(at.Month()), slug.Stem(filename), uuid.New())
}

// # Statistics

// Count is one bucket of a distribution.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats summarises the dataset for the analytics dashboard.
type Stats struct {
	Total            int     `json:"total"`
	Categories       []Count `json:"categories"`
	Subcategories    []Count `json:"subcategories"`
	TopSubcategories []Count `json:"top_subcategories"`
}

// ComputeStats counts records per category and subcategory. Empty values are
// counted as "Unknown". Distributions are sorted by count, descending, then name.
func ComputeStats(records []record.Record) Stats {
	categories := map[string]int{}
	subcategories := map[string]int{}

	for _, r := range records {
		categories[cmp.Or(r.Category, unknownLabel)]++
		subcategories[cmp.Or(r.Subcategory, unknownLabel)]++
	}

	bySubcategory := ranked(subcategories)
	return Stats{
		Total:            len(records),
		Categories:       ranked(categories),
		Subcategories:    bySubcategory,
		TopSubcategories: slices.Clone(bySubcategory[:min(topSubcategories, len(bySubcategory))]),
	}
}

func ranked(counts map[string]int) []Count {
	result := make([]Count, 0, len(counts))
	for name, count := range counts {
		result = append(result, Count{Name: name, Count: count})
	}
	slices.SortFunc(result, func(a, b Count) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return result
}
