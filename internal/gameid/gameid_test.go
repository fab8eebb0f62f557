package gameid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/musforbots/internal/randutil"
)

func TestGenerateProducesValidIDs(t *testing.T) {
	t.Parallel()
	id := Generate()
	require.Len(t, id, Length)
	require.NoError(t, Validate(id))
}

func TestGenerateUnique(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for range 100 {
		id := Generate()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()
	rng := randutil.New(3)
	g := NewGenerator(randutil.Reader(rng))
	for range 20 {
		s := g.Generate()
		id, err := Decode(s)
		require.NoError(t, err)
		assert.Equal(t, s, Encode(id))
		assert.Equal(t, uuid.Version(7), id.Version())
	}
}

func TestValidateRejectsBadInput(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"too short":     "0123",
		"first too big": "8zzzzzzzzzzzzzzzzzzzzzzzzz",
		"bad character": "0000000000000000000000000u",
	}
	for name, id := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, Validate(id))
		})
	}
}
