package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	first, err := h.Hash("senha123")
	require.NoError(t, err)
	second, err := h.Hash("senha123")
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "salt must differ per call")

	v := NewBcryptVerifier()
	assert.NoError(t, v.Compare(first, "senha123"))
	assert.NoError(t, v.Compare(second, "senha123"))
	assert.Error(t, v.Compare(first, "senha124"))

	cost, err := bcrypt.Cost([]byte(first))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	t.Parallel()
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).cost)
}

func TestBcryptVerifier_MalformedHash(t *testing.T) {
	t.Parallel()
	v := NewBcryptVerifier()
	assert.NotPanics(t, func() {
		assert.Error(t, v.Compare("not-a-hash", "senha123"))
		assert.Error(t, v.Compare("", "senha123"))
	})
}

func TestDummyHashIsWellFormed(t *testing.T) {
	t.Parallel()
	_, err := bcrypt.Cost([]byte(dummyHash))
	assert.NoError(t, err)
}
