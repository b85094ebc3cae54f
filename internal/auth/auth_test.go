package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHash = "$argon2id$v=19$m=19,t=2,p=1$cnBVTU1hTnA3SWppYk56bQ$h9WU9gybGvxV6TUA46S96w"

func TestVerifierAcceptsMatchingToken(t *testing.T) {
	v, err := NewVerifier(testHash)
	require.NoError(t, err)

	assert.True(t, v.Verify("sandcastle"))
	assert.False(t, v.Verify("sandcastles"))
	assert.False(t, v.Verify(""))
}

func TestNewVerifierRejectsMalformedHashes(t *testing.T) {
	tests := []struct {
		name string
		phc  string
	}{
		{name: "empty", phc: ""},
		{name: "bcrypt", phc: "$2y$10$abcdefghijklmnopqrstuv"},
		{name: "argon2i", phc: "$argon2i$v=19$m=19,t=2,p=1$cnBVTU1hTnA3SWppYk56bQ$h9WU9gybGvxV6TUA46S96w"},
		{name: "old version", phc: "$argon2id$v=16$m=19,t=2,p=1$cnBVTU1hTnA3SWppYk56bQ$h9WU9gybGvxV6TUA46S96w"},
		{name: "bad params", phc: "$argon2id$v=19$m=x,t=2,p=1$cnBVTU1hTnA3SWppYk56bQ$h9WU9gybGvxV6TUA46S96w"},
		{name: "zero time", phc: "$argon2id$v=19$m=19,t=0,p=1$cnBVTU1hTnA3SWppYk56bQ$h9WU9gybGvxV6TUA46S96w"},
		{name: "bad salt", phc: "$argon2id$v=19$m=19,t=2,p=1$!!!$h9WU9gybGvxV6TUA46S96w"},
		{name: "missing hash", phc: "$argon2id$v=19$m=19,t=2,p=1$cnBVTU1hTnA3SWppYk56bQ$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVerifier(tt.phc)
			assert.ErrorIs(t, err, ErrInvalidHash)
		})
	}
}

func TestHashTokenRoundTrip(t *testing.T) {
	params := Params{Memory: 64, Time: 1, Threads: 1, SaltLen: 8, KeyLen: 16}

	phc, err := HashToken("lighthouse", params)
	require.NoError(t, err)
	assert.Contains(t, phc, "$argon2id$v=19$m=64,t=1,p=1$")

	v, err := NewVerifier(phc)
	require.NoError(t, err)
	assert.True(t, v.Verify("lighthouse"))
	assert.False(t, v.Verify("sandcastle"))

	other, err := HashToken("lighthouse", params)
	require.NoError(t, err)
	assert.NotEqual(t, phc, other, "salts are random")
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		token  string
		err    error
	}{
		{name: "valid", header: "Bearer sandcastle", token: "sandcastle"},
		{name: "lowercase scheme", header: "bearer sandcastle", token: "sandcastle"},
		{name: "missing", header: "", err: ErrMissingToken},
		{name: "basic auth", header: "Basic Zm9vOmJhcg==", err: ErrMissingToken},
		{name: "no token", header: "Bearer ", err: ErrMissingToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/v1/benchmarks", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			token, err := BearerToken(r)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	v, err := NewVerifier(testHash)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	assert.ErrorIs(t, v.Authenticate(r), ErrMissingToken)

	r.Header.Set("Authorization", "Bearer wrong")
	assert.ErrorIs(t, v.Authenticate(r), ErrInvalidToken)

	r.Header.Set("Authorization", "Bearer sandcastle")
	assert.NoError(t, v.Authenticate(r))
}
