package pkce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChallengeS256MatchesKnownValue(t *testing.T) {
	assert.Equal(t, "n4bQgYhMfWWaL-qgxVrQFaO_TxsrC4Is0V1sFbDwCgg", ChallengeS256("test"))
}

func TestChallengeS256MatchesRFC7636Vector(t *testing.T) {
	// Appendix B of RFC 7636.
	verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	assert.Equal(t, "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM", ChallengeS256(verifier))
}

func TestGenerateVerifierLengthAndCharset(t *testing.T) {
	for i := 0; i < 20; i++ {
		verifier := GenerateVerifier()
		require.GreaterOrEqual(t, len(verifier), MinVerifierLength)
		require.LessOrEqual(t, len(verifier), MaxVerifierLength)
		require.NoError(t, ValidateVerifier(verifier))
	}
}

func TestGenerateVerifierIsRandom(t *testing.T) {
	assert.NotEqual(t, GenerateVerifier(), GenerateVerifier())
}

func TestValidateVerifier(t *testing.T) {
	tests := []struct {
		name     string
		verifier string
		wantErr  string
	}{
		{"minimum length", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", ""},
		{"all unreserved punctuation", "abcABC123-._~abcABC123-._~abcABC123-._~abcABC", ""},
		{"too short", "short", "must be between 43 and 128 characters"},
		{"too long", string(make([]byte, 129)), "must be between 43 and 128 characters"},
		{"invalid character", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa+", "invalid character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVerifier(tt.verifier)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
