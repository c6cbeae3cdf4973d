package client

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestCustomerIDFromToken(t *testing.T) {
	id, err := CustomerIDFromToken(signedToken(t, jwt.MapClaims{"customer_id": float64(7)}))
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	id, err = CustomerIDFromToken(signedToken(t, jwt.MapClaims{"sub": "42"}))
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestCustomerIDFromToken_Invalid(t *testing.T) {
	_, err := CustomerIDFromToken("not-a-jwt")
	require.Error(t, err)

	_, err = CustomerIDFromToken(signedToken(t, jwt.MapClaims{"email": "a@b.c"}))
	require.Error(t, err)
}
