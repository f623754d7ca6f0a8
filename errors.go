package mcl

import (
	"encoding/hex"
	"errors"
	"fmt"
)

var (
	ErrBadUnitMax = errors.New("mcl: unitMax must be at least 2")
	ErrNilHasher  = errors.New("mcl: a hasher must be provided")

	// ErrDigestLen indicates a supplied key does not match the digest width
	// fixed at construction time.
	ErrDigestLen = errors.New("mcl: key length does not match the digest width")

	ErrKeyNotFound   = errors.New("mcl: key not found")
	ErrHashCollision = errors.New("mcl: hash collision")

	// ErrUnknown indicates internal navigation terminated in an unexpected
	// state. It is never produced by well-formed mutations.
	ErrUnknown = errors.New("mcl: internal structure in an unexpected state")

	ErrVerifyInclusionFailed = errors.New("mcl: verify inclusion failed")
)

// KeyNotFoundError reports an absent key. When the list holds at least one
// key ordered before the missing one, Nearest carries the greatest such key,
// which callers implementing range scans can resume from.
type KeyNotFoundError struct {
	Key     []byte
	Nearest []byte
}

func (e *KeyNotFoundError) Error() string {
	if e.Nearest == nil {
		return fmt.Sprintf("%v: %s", ErrKeyNotFound, hex.EncodeToString(e.Key))
	}
	return fmt.Sprintf(
		"%v: %s (nearest left neighbor %s)",
		ErrKeyNotFound, hex.EncodeToString(e.Key), hex.EncodeToString(e.Nearest))
}

func (e *KeyNotFoundError) Unwrap() error { return ErrKeyNotFound }

// HashCollisionError reports that a value hashed to a key already bound to a
// different value. The existing mapping is never overwritten; Existing is a
// copy of the value that keeps the key.
type HashCollisionError struct {
	Key      []byte
	Existing []byte
}

func (e *HashCollisionError) Error() string {
	return fmt.Sprintf("%v: key %s", ErrHashCollision, hex.EncodeToString(e.Key))
}

func (e *HashCollisionError) Unwrap() error { return ErrHashCollision }
