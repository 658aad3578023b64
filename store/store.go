// Package store defines the key-value state the bridge persists and a write
// buffer that makes one entry point invocation all-or-nothing.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// KVStore is persistent key-value state. Get returns nil, nil for a missing key.
type KVStore interface {
	Get(key string) ([]byte, error)
	Has(key string) (bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	// Keys returns every key starting with prefix, sorted.
	Keys(prefix string) ([]string, error)
}

// Committer applies a set of writes and deletes atomically.
type Committer interface {
	KVStore
	Commit(writes map[string][]byte, deletes []string) error
}

// GetJSON loads and decodes key into v. It reports false when the key is absent.
func GetJSON(s KVStore, key string, v interface{}) (bool, error) {
	raw, err := s.Get(key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("cannot unmarshal %s: %w", key, err)
	}
	return true, nil
}

func SetJSON(s KVStore, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cannot marshal %s: %w", key, err)
	}
	return s.Set(key, raw)
}

var ErrEmptyKey = errors.New("empty key")
