// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aanchalalytcs/showcase/internal/platform/apperr"
	"github.com/aanchalalytcs/showcase/internal/platform/ctxutil"
	"github.com/aanchalalytcs/showcase/internal/platform/validate"
	"github.com/aanchalalytcs/showcase/pkg/convert"
)

// maxBodyBytes caps JSON request bodies. Submissions are a handful of short fields.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - writer: http.ResponseWriter (used to enforce the body size limit)
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
RequiredParam retrieves a named URL parameter and fails when it is blank.
*/
func RequiredParam(request *http.Request, name string) (string, error) {
	value := strings.TrimSpace(chi.URLParam(request, name))
	if value == "" {
		return "", apperr.ValidationError("Missing path parameter",
			apperr.FieldError{Field: name, Message: "Required."})
	}
	return value, nil
}

/*
Query reports the value of a query parameter and whether it was present at all.
An explicitly empty parameter ("?category=") is present and clears a filter.
*/
func Query(request *http.Request, name string) (string, bool) {
	values, ok := request.URL.Query()[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return strings.TrimSpace(values[0]), true
}

/*
QueryInt parses an integer query parameter. ok is false when it is absent or malformed.
*/
func QueryInt(request *http.Request, name string) (int, bool) {
	raw, present := Query(request, name)
	if !present {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

/*
QueryBool reports whether a boolean query flag such as "?refresh=true" is set.
*/
func QueryBool(request *http.Request, name string) bool {
	raw, _ := Query(request, name)
	return convert.ToBool(raw)
}

/*
SessionID returns the API session bound to the request by the session middleware.
*/
func SessionID(request *http.Request) string {
	return ctxutil.GetSessionID(request.Context())
}
