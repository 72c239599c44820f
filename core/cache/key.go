package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrKeyDerivation is returned when a query cannot be canonicalized into a
// cache key. There is no safe default key, so this fails fast.
var ErrKeyDerivation = errors.New("cache key derivation failed")

// Key identifies a cached entry, derived deterministically from the query
type Key string

// DeriveKey canonicalizes a structured query and hashes it. encoding/json
// sorts map keys and serializes struct fields in declaration order, so two
// structurally identical queries produce the same key regardless of how the
// caller populated them, across process runs.
func DeriveKey(query interface{}) (Key, error) {
	canonical, err := json.Marshal(query)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}

	sum := sha256.Sum256(canonical)
	return Key(hex.EncodeToString(sum[:])), nil
}
