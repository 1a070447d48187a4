// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package project

import (
	"strings"

	"github.com/aanchalalytcs/showcase/internal/core/record"
	"github.com/aanchalalytcs/showcase/internal/platform/validate"
	"github.com/aanchalalytcs/showcase/pkg/query"
)

// Field names reported in validation details.
const (
	FieldImages      = "img"
	FieldHeading     = "heading"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldSubcategory = "subcategory"
	FieldVideo       = "video"
	FieldRepository  = "github"
)

// Submission is the payload of the project submission form.
type Submission struct {
	// Images is a comma-delimited list of image URLs.
	Images        string `json:"img"`
	Heading       string `json:"heading"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Subcategory   string `json:"subcategory"`
	VideoURL      string `json:"video"`
	RepositoryURL string `json:"github"`
}

// Validate applies the form rules. Every image must be an http(s) URL; the
// video and repository links are optional.
func (s Submission) Validate() error {
	validator := &validate.Validator{}

	refs := query.StringSlice(s.Images)
	validator.Custom(FieldImages, len(refs) == 0, "Image URL is required.")
	for _, ref := range refs {
		validator.HTTPURL(FieldImages, ref)
	}

	validator.
		Required(FieldHeading, s.Heading, "Heading is required.").
		Required(FieldDescription, s.Description, "Description is required.").
		Required(FieldCategory, s.Category, "Category is required.").
		Required(FieldSubcategory, s.Subcategory, "Sub Category is required.").
		HTTPURL(FieldVideo, strings.TrimSpace(s.VideoURL)).
		GitHubURL(FieldRepository, strings.TrimSpace(s.RepositoryURL))

	return validator.Err()
}

// Record converts the submission into a record without id or timestamp;
// both are assigned by the remote store.
func (s Submission) Record() record.Record {
	return record.Record{
		Heading:       strings.TrimSpace(s.Heading),
		Description:   strings.TrimSpace(s.Description),
		Category:      strings.TrimSpace(s.Category),
		Subcategory:   strings.TrimSpace(s.Subcategory),
		ImageRefs:     query.StringSlice(s.Images),
		VideoURL:      strings.TrimSpace(s.VideoURL),
		RepositoryURL: strings.TrimSpace(s.RepositoryURL),
	}
}
