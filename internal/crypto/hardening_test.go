package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHasher() *VerifierHasher {
	return NewVerifierHasher(HardeningParams{Time: 1, Memory: 1024, Threads: 1}, nil)
}

func TestVerifierHasher_HardenAndMatch(t *testing.T) {
	h := testHasher()

	hash, salt, err := h.Harden("dmVyaWZpZXI=")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEmpty(t, salt)

	assert.True(t, h.Matches("dmVyaWZpZXI=", hash, salt))
	assert.False(t, h.Matches("b3RoZXI=", hash, salt))
	assert.False(t, h.Matches("dmVyaWZpZXI=", hash, "%%%"))
	assert.False(t, h.Matches("dmVyaWZpZXI=", "%%%", salt))
}

func TestVerifierHasher_SaltsDiffer(t *testing.T) {
	h := testHasher()

	hash1, salt1, err := h.Harden("v")
	require.NoError(t, err)
	hash2, salt2, err := h.Harden("v")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)
}

func TestVerifierHasher_Errors(t *testing.T) {
	_, _, err := testHasher().Harden("")
	assert.ErrorIs(t, err, ErrDerivationFailed)

	broken := NewVerifierHasher(HardeningParams{Memory: 1024}, brokenRandomProvider{reader: failingReader{}})
	_, _, err = broken.Harden("v")
	assert.ErrorIs(t, err, ErrEntropyUnavailable)
}
