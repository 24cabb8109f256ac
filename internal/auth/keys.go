// Package auth verifies the access keys presented to key-protected routes.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// ErrEmptyKey is returned when a configured key is empty
var ErrEmptyKey = errors.New("key cannot be empty")

type keyDigest [blake2b.Size256]byte

// KeyStore holds BLAKE2b digests of the function keys and of the master key.
// It is read-only after construction and safe for concurrent use.
type KeyStore struct {
	functionKeys []keyDigest
	masterKey    *keyDigest
}

// NewKeyStore digests the given keys. masterKey may be empty,
// in which case no request can reach admin-level routes.
func NewKeyStore(functionKeys []string, masterKey string) (*KeyStore, error) {
	store := &KeyStore{
		functionKeys: make([]keyDigest, 0, len(functionKeys)),
	}

	for i, key := range functionKeys {
		if key == "" {
			return nil, fmt.Errorf("function key %d: %w", i, ErrEmptyKey)
		}
		store.functionKeys = append(store.functionKeys, digest(key))
	}

	if masterKey != "" {
		d := digest(masterKey)
		store.masterKey = &d
	}

	return store, nil
}

// VerifyFunctionKey reports whether key is one of the function keys.
// Every configured key is compared, so the time taken does not depend on which one matches.
func (s *KeyStore) VerifyFunctionKey(key string) bool {
	if key == "" {
		return false
	}
	presented := digest(key)
	match := 0
	for i := range s.functionKeys {
		match |= subtle.ConstantTimeCompare(presented[:], s.functionKeys[i][:])
	}
	return match == 1
}

// VerifyMasterKey reports whether key is the master key.
func (s *KeyStore) VerifyMasterKey(key string) bool {
	if key == "" || s.masterKey == nil {
		return false
	}
	presented := digest(key)
	return subtle.ConstantTimeCompare(presented[:], s.masterKey[:]) == 1
}

// FunctionKeyCount returns the number of configured function keys
func (s *KeyStore) FunctionKeyCount() int {
	return len(s.functionKeys)
}

func digest(key string) keyDigest {
	return blake2b.Sum256([]byte(key))
}
