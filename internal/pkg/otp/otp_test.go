package otp

import (
	"bytes"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue_CodeShapeAndRange(t *testing.T) {
	iss := NewIssuer()
	for i := 0; i < 500; i++ {
		code, _, err := iss.Issue()
		require.NoError(t, err)
		require.Len(t, code, 6)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, minCode)
		assert.LessOrEqual(t, n, maxCode)
	}
}

func TestIssue_ExpiryIsOneHourAhead(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	iss := NewIssuer(WithClock(func() time.Time { return now }))

	_, expiry, err := iss.Issue()
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiry)
	assert.True(t, expiry.After(now))
}

func TestIssue_CustomTTL(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	iss := NewIssuer(WithClock(func() time.Time { return now }), WithTTL(10*time.Minute))

	_, expiry, err := iss.Issue()
	require.NoError(t, err)
	assert.Equal(t, now.Add(10*time.Minute), expiry)
}

func TestIssue_LowestDrawMapsToMinimum(t *testing.T) {
	iss := NewIssuer(WithRandom(bytes.NewReader(make([]byte, 64))))
	code, _, err := iss.Issue()
	require.NoError(t, err)
	assert.Equal(t, "100000", code)
}

func TestIssue_RandomFailure(t *testing.T) {
	iss := NewIssuer(WithRandom(bytes.NewReader(nil)))
	_, _, err := iss.Issue()
	assert.Error(t, err)
}
