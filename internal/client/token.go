package client

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// CustomerIDFromToken pulls the customer id claim out of the backend
// access token. The token is parsed without signature verification:
// this side only needs the identity hint for request payloads, the
// backend re-verifies the signature on every call.
func CustomerIDFromToken(accessToken string) (uint, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	_, _, err := parser.ParseUnverified(accessToken, claims)
	if err != nil {
		return 0, fmt.Errorf("parse access token: %w", err)
	}

	for _, key := range []string{"customer_id", "user_id", "sub"} {
		switch v := claims[key].(type) {
		case float64:
			return uint(v), nil
		case string:
			var id uint
			if _, err := fmt.Sscanf(v, "%d", &id); err == nil {
				return id, nil
			}
		}
	}

	return 0, fmt.Errorf("no customer id claim in token")
}
