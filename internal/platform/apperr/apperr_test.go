// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanchalalytcs/showcase/internal/platform/apperr"
)

/*
TestRejected_FallsBackToGenericMessage checks the server-message fallback.
*/
func TestRejected_FallsBackToGenericMessage(t *testing.T) {
	assert.Equal(t, apperr.GenericFailure, apperr.Rejected("").Message)
	assert.Equal(t, "Row not found", apperr.Rejected("Row not found").Message)
	assert.Equal(t, http.StatusBadGateway, apperr.Rejected("x").HTTPStatus)
}

/*
TestUpstream_KeepsCauseForLogging ensures the cause chain is preserved but hidden.
*/
func TestUpstream_KeepsCauseForLogging(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	err := fmt.Errorf("delete row: %w", apperr.Upstream(cause))

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", ae.Code)
	assert.NotContains(t, ae.Message, "i/o timeout")
	assert.ErrorIs(t, err, cause)
	assert.True(t, apperr.HasCode(err, "UPSTREAM_UNAVAILABLE"))
}

/*
TestAs_NonAppError returns nil for plain errors.
*/
func TestAs_NonAppError(t *testing.T) {
	assert.Nil(t, apperr.As(errors.New("plain")))
	assert.False(t, apperr.IsAppError(errors.New("plain")))
	assert.False(t, apperr.HasCode(nil, "NOT_FOUND"))
}

/*
TestAnswered separates store answers from requests that never got one.
*/
func TestAnswered(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rejected", apperr.Rejected("Row not found"), true},
		{"bad response", apperr.BadResponse(errors.New("responded 500")), true},
		{"wrapped bad response", fmt.Errorf("delete: %w", apperr.BadResponse(nil)), true},
		{"transport", apperr.Upstream(errors.New("connection refused")), false},
		{"plain", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.Answered(tt.err))
		})
	}
}
