// Package auth verifies bearer tokens against an argon2id PHC hash.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	// ErrInvalidHash is returned for strings that are not argon2id PHC hashes
	ErrInvalidHash = errors.New("invalid argon2id hash")
	// ErrMissingToken is returned when a request carries no bearer token
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken is returned when a bearer token does not match
	ErrInvalidToken = errors.New("invalid bearer token")
)

// Params are the argon2id cost parameters
type Params struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	SaltLen int
	KeyLen  uint32
}

// DefaultParams follow the OWASP minimum for argon2id
var DefaultParams = Params{Memory: 19 * 1024, Time: 2, Threads: 1, SaltLen: 16, KeyLen: 32}

// Verifier checks tokens against a parsed argon2id hash
type Verifier struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	hash    []byte
}

// NewVerifier parses a PHC string of the form
// $argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>.
func NewVerifier(phc string) (*Verifier, error) {
	parts := strings.Split(phc, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	if version != argon2.Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidHash, version)
	}

	v := &Verifier{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &v.memory, &v.time, &v.threads); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	if v.time == 0 || v.threads == 0 {
		return nil, fmt.Errorf("%w: zero cost parameter", ErrInvalidHash)
	}

	var err error
	if v.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, fmt.Errorf("%w: salt: %v", ErrInvalidHash, err)
	}
	if v.hash, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, fmt.Errorf("%w: hash: %v", ErrInvalidHash, err)
	}
	if len(v.hash) == 0 {
		return nil, fmt.Errorf("%w: empty hash", ErrInvalidHash)
	}

	return v, nil
}

// Verify reports whether token hashes to the stored value
func (v *Verifier) Verify(token string) bool {
	key := argon2.IDKey([]byte(token), v.salt, v.time, v.memory, v.threads, uint32(len(v.hash)))
	return subtle.ConstantTimeCompare(key, v.hash) == 1
}

// HashToken derives a PHC string for token with a random salt
func HashToken(token string, p Params) (string, error) {
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(token), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// BearerToken extracts the token from an Authorization: Bearer header
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMissingToken
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// Authenticate checks the request's bearer token
func (v *Verifier) Authenticate(r *http.Request) error {
	token, err := BearerToken(r)
	if err != nil {
		return err
	}
	if !v.Verify(token) {
		return ErrInvalidToken
	}
	return nil
}
