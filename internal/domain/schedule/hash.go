package schedule

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

// Booking hash policy: fixed-length random tokens, re-rolled on collision up
// to hashAttempts times, then exactly one longer attempt, then a hard
// ExhaustionError. Never recursive, never unbounded.
const (
	hashLength         = 32
	hashFallbackLength = 64
	hashAttempts       = 10
)

// HashExistsFunc reports whether a booking hash is already taken.
type HashExistsFunc func(ctx context.Context, hash string) (bool, error)

// GenerateHash produces a booking hash verified as unique at generation
// time. The store's unique index remains the final arbiter.
func GenerateHash(ctx context.Context, exists HashExistsFunc) (string, error) {
	for i := 0; i < hashAttempts; i++ {
		h, err := randomHex(hashLength)
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, h)
		if err != nil {
			return "", err
		}
		if !taken {
			return h, nil
		}
	}

	// Escalation: one longer token before giving up.
	h, err := randomHex(hashFallbackLength)
	if err != nil {
		return "", err
	}
	taken, err := exists(ctx, h)
	if err != nil {
		return "", err
	}
	if !taken {
		return h, nil
	}

	return "", &ExhaustionError{Attempts: hashAttempts + 1}
}

func randomHex(length int) (string, error) {
	buf := make([]byte, length/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
