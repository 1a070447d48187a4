// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used exclusively in the service layer, never in handlers or
// storage. Validation failures block a submission before any network call.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aanchalalytcs/showcase/internal/platform/apperr"
)

var (
	// httpURLRegex matches any absolute http(s) URL.
	httpURLRegex = regexp.MustCompile(`^https?://.+`)
	// githubURLRegex matches a GitHub repository or profile URL.
	githubURLRegex = regexp.MustCompile(`^https?://github\.com/.+`)
	// emailRegex is the contact form's address rule.
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails with message if the trimmed value is empty.
func (v *Validator) Required(field, value, message string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, message)
	}
	return v
}

// HTTPURL fails if a non-empty value is not an http(s) URL.
// Combine with [Validator.Required] when the field is mandatory.
func (v *Validator) HTTPURL(field, value string) *Validator {
	if value != "" && !httpURLRegex.MatchString(value) {
		v.add(field, "Enter a valid URL.")
	}
	return v
}

// GitHubURL fails if a non-empty value does not point at github.com.
func (v *Validator) GitHubURL(field, value string) *Validator {
	if value != "" && !githubURLRegex.MatchString(value) {
		v.add(field, "Enter a valid GitHub URL.")
	}
	return v
}

// Email fails if a non-empty value is not a plausible email address.
func (v *Validator) Email(field, value string) *Validator {
	if value != "" && !emailRegex.MatchString(value) {
		v.add(field, "Please enter a valid email address.")
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("img", len(refs) == 0, "Image URL is required.")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method, call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
// Only the first failure per field is kept, matching inline form messages.
func (v *Validator) add(field, message string) {
	for _, e := range v.errs {
		if e.Field == field {
			return
		}
	}
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}
