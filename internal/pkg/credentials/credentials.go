// Package credentials implements the admin bearer-credential scheme: tokens
// are "<prefix><secret>"; the store keeps an HMAC-SHA256 lookup key plus an
// argon2id PHC for slow verification.
package credentials

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 2
	argonMemKiB  = 16 * 1024
	argonThreads = 1
	argonKeyLen  = 32
	saltBytes    = 16
)

// ParseBearer strips the token prefix from a raw bearer value. It returns
// false when the prefix is missing or nothing follows it.
func ParseBearer(raw, prefix string) (string, bool) {
	if prefix == "" || !strings.HasPrefix(raw, prefix) {
		return "", false
	}
	secret := strings.TrimPrefix(raw, prefix)
	if secret == "" {
		return "", false
	}
	return secret, true
}

// LookupKey returns the hex HMAC-SHA256 of the secret under the pepper,
// used as a fast constant-size index for the credential.
func LookupKey(pepper, secret string) string {
	mac := hmac.New(sha256.New, []byte(pepper))
	mac.Write([]byte(secret))
	return hex.EncodeToString(mac.Sum(nil))
}

// Hash derives an argon2id PHC string from secret+pepper with a fresh salt.
func Hash(secret, pepper string) (string, error) {
	if secret == "" {
		return "", errors.New("empty secret")
	}
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(secret+pepper), salt, argonTime, argonMemKiB, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		argonMemKiB, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify checks secret+pepper against a PHC produced by Hash. The comparison
// is constant time.
func Verify(secret, pepper, phc string) (bool, error) {
	if !strings.HasPrefix(phc, "$argon2id$") {
		return false, errors.New("unsupported hash format")
	}
	parts := strings.Split(phc, "$")
	if len(parts) != 6 {
		return false, errors.New("invalid phc")
	}

	var m, t, p uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return false, err
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, err
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, err
	}

	got := argon2.IDKey([]byte(secret+pepper), salt, t, m, uint8(p), uint32(len(want)))
	return hmac.Equal(got, want), nil
}
