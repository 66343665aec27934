package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired reports whether tok is a JWT whose exp claim lies before now.
// The token is treated as an opaque bearer string everywhere else; this is a
// best-effort local check so a restored session with a long-dead token can
// be discarded without a round trip. Tokens that are not JWTs, or JWTs
// without an exp claim, are never considered expired locally.
func TokenExpired(tok string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
