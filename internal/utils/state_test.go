package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	state, err := GenerateState("secret", now)
	require.NoError(t, err)
	assert.Len(t, strings.Split(state, "."), 3)

	assert.NoError(t, VerifyState("secret", state, now.Add(time.Minute), 10*time.Minute))
}

func TestStateRejected(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	state, err := GenerateState("secret", now)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		state  string
		at     time.Time
	}{
		{"wrong secret", "other", state, now},
		{"expired", "secret", state, now.Add(11 * time.Minute)},
		{"from the future", "secret", state, now.Add(-time.Minute)},
		{"tampered", "secret", "1700000001" + state[strings.Index(state, "."):], now},
		{"malformed", "secret", "abc", now},
		{"empty", "secret", "", now},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, VerifyState(tt.secret, tt.state, tt.at, 10*time.Minute))
		})
	}
}

func TestGenerateHMACDeterministic(t *testing.T) {
	assert.Equal(t, GenerateHMAC("a", "k"), GenerateHMAC("a", "k"))
	assert.NotEqual(t, GenerateHMAC("a", "k"), GenerateHMAC("b", "k"))
	assert.Len(t, GenerateHMAC("a", "k"), 64)
}
