package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasherWithCost(4)

	hash, err := h.Hash("astrongpassword")
	require.NoError(t, err)
	assert.NotEqual(t, "astrongpassword", hash)

	assert.NoError(t, h.Compare(hash, "astrongpassword"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), ErrMismatch)
	assert.Error(t, h.Compare("not-a-bcrypt-hash", "astrongpassword"))
}
