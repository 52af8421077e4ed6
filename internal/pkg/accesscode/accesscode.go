// Package accesscode generates and validates client portal access codes.
package accesscode

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// Codes avoid 0/O and 1/I so they survive being read over the phone.
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	// MinLength is the policy floor for stored access codes.
	MinLength = 6
	// GeneratedLength is the length of codes this package mints.
	GeneratedLength = 8
)

var ErrTooShort = errors.New("access code must be at least 6 characters")

// Generate returns a new random access code.
func Generate() (string, error) {
	b := make([]byte, GeneratedLength)
	max := big.NewInt(int64(len(alphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b), nil
}

// Validate checks an admin-supplied code against policy.
func Validate(code string) error {
	if len(code) < MinLength {
		return ErrTooShort
	}
	return nil
}
