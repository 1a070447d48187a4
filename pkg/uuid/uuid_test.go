// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aanchalalytcs/showcase/pkg/uuid"
)

/*
TestNew_IsValidAndUnique checks generated ids.
*/
func TestNew_IsValidAndUnique(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	assert.True(t, uuid.Valid(a))
	assert.NotEqual(t, a, b)
	assert.False(t, uuid.Valid("not-a-session"))
	assert.False(t, uuid.Valid(""))
}
