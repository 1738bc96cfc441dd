package entra

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// PeekClaims decodes a JWT's claims WITHOUT verifying its signature. This is
// display-only: the tool reports what a token says about itself, it never
// trusts it.
func PeekClaims(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("token is not a decodable JWT: %w", err)
	}
	return claims, nil
}

// SummarizeToken returns a short "key=value" summary of the identifying
// claims in an access token, or "" when the token is opaque.
func SummarizeToken(raw string) string {
	claims, err := PeekClaims(raw)
	if err != nil {
		return ""
	}
	var parts []string
	for _, key := range []string{"tid", "appid", "scp", "aud"} {
		if v, ok := claims[key].(string); ok && v != "" {
			parts = append(parts, key+"="+v)
		}
	}
	return strings.Join(parts, ", ")
}
