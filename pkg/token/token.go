package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MarkerTTL is how long an issued admin marker stays valid.
const MarkerTTL = 7 * 24 * time.Hour

// Issuer produces and checks the admin trust marker carried in the
// auth cookie. The backing is pluggable so the transport and handlers
// never care what the marker actually is.
type Issuer interface {
	Issue() (string, error)
	Verify(marker string) bool
}

// NewIssuer selects the marker backing by mode.
// "signed" uses an HS256 JWT; anything else falls back to the plain
// boolean marker the original scheme used.
func NewIssuer(mode, secret string) Issuer {
	if mode == "signed" {
		return &SignedIssuer{secret: secret}
	}
	return &PlainIssuer{}
}

// PlainIssuer reproduces the legacy scheme: the marker is the literal
// string "true" and verification is a presence check. Known weakness,
// kept as the default on purpose.
type PlainIssuer struct{}

func (p *PlainIssuer) Issue() (string, error) {
	return "true", nil
}

func (p *PlainIssuer) Verify(marker string) bool {
	return marker != ""
}

// SignedIssuer backs the marker with an HS256 JWT carrying only an
// expiry. Opt-in via AUTH_TOKEN_MODE=signed.
type SignedIssuer struct {
	secret string
}

type markerClaims struct {
	jwt.RegisteredClaims
}

func (s *SignedIssuer) Issue() (string, error) {
	claims := markerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(MarkerTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(s.secret))
}

func (s *SignedIssuer) Verify(marker string) bool {
	claims := &markerClaims{}

	tok, err := jwt.ParseWithClaims(marker, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return false
	}

	return tok.Valid
}
