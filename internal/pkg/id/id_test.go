package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_IsValidAndUnique(t *testing.T) {
	a, b := New(), New()
	assert.True(t, Valid(a))
	assert.True(t, Valid(b))
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 26)
}

func TestValid_RejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "abc", "507f1f77bcf86cd799439011", "01HZZZZZZZZZZZZZZZZZZZZZZZ!"} {
		assert.False(t, Valid(s), s)
	}
}
