package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenDecode is returned when a token's payload cannot be read.
var ErrTokenDecode = errors.New("token decode failed")

// ExtractExpiry reads the expiry claim from a signed token without
// verifying the signature. The backend's validate-token endpoint is the
// authority on validity; the client only needs the expiry for its local
// freshness check, so no verification key is required here.
func ExtractExpiry(token string) (time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrTokenDecode, err)
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("%w: missing expiry claim", ErrTokenDecode)
	}

	return claims.ExpiresAt.Time, nil
}
