// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package sheets

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// errMalformed marks a response body that does not match the dataset's convention.
var errMalformed = errors.New("sheets: malformed response")

// Outcome is the interpreted result of a mutating call.
type Outcome struct {
	// OK is true when the remote store confirmed the operation.
	OK bool
	// Message is the server-provided explanation, if any.
	Message string
	// ID is the identifier assigned by a create call.
	ID string
}

// Convention interprets the response body of a mutating call. Each dataset
// deployment uses exactly one convention.
type Convention interface {
	Interpret(body []byte) (Outcome, error)
	String() string
}

var (
	// StatusField reads {"status": "success" | <other>, "message"?, "id"?}.
	StatusField Convention = statusField{}
	// SuccessFlag reads {"success": bool, "message"?}.
	SuccessFlag Convention = successFlag{}
)

type envelope struct {
	Status  *string         `json:"status"`
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	ID      json.RawMessage `json:"id"`
}

func decodeEnvelope(body []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return envelope{}, errors.Join(errMalformed, err)
	}
	return env, nil
}

type statusField struct{}

func (statusField) String() string { return "status_field" }

func (statusField) Interpret(body []byte) (Outcome, error) {
	env, err := decodeEnvelope(body)
	if err != nil {
		return Outcome{}, err
	}
	if env.Status == nil {
		return Outcome{}, errMalformed
	}
	return Outcome{
		OK:      *env.Status == "success",
		Message: env.Message,
		ID:      scalar(env.ID),
	}, nil
}

type successFlag struct{}

func (successFlag) String() string { return "success_flag" }

func (successFlag) Interpret(body []byte) (Outcome, error) {
	env, err := decodeEnvelope(body)
	if err != nil {
		return Outcome{}, err
	}
	if env.Success == nil {
		return Outcome{}, errMalformed
	}
	return Outcome{
		OK:      *env.Success,
		Message: env.Message,
		ID:      scalar(env.ID),
	}, nil
}

// scalar renders a JSON string or number as plain text.
func scalar(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
