package storage

import (
	"context"
	"fmt"

	"github.com/wildwave/safari-admin/pkg/crypto/adaptive"
)

// EncryptedKV encrypts values before they reach the underlying engine.
// Keys stay in clear so prefix scans keep working. Each value is bound to
// its key as additional data, so values cannot be swapped between keys.
type EncryptedKV struct {
	KV
	cipher adaptive.Cipher
}

// NewEncryptedKV wraps kv with cipher.
func NewEncryptedKV(kv KV, cipher adaptive.Cipher) *EncryptedKV {
	return &EncryptedKV{KV: kv, cipher: cipher}
}

// Get decrypts the stored value.
func (e *EncryptedKV) Get(ctx context.Context, key []byte) ([]byte, error) {
	ct, err := e.KV.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	pt, err := e.cipher.Decrypt(ct, key)
	if err != nil {
		return nil, fmt.Errorf("decrypt %q: %w", key, err)
	}
	return pt, nil
}

// Set encrypts value and stores it.
func (e *EncryptedKV) Set(ctx context.Context, key, value []byte) error {
	ct, err := e.cipher.Encrypt(value, key)
	if err != nil {
		return fmt.Errorf("encrypt %q: %w", key, err)
	}
	return e.KV.Set(ctx, key, ct)
}

// Scan decrypts each value before handing it to fn. A value that fails to
// decrypt stops the scan with an error.
func (e *EncryptedKV) Scan(ctx context.Context, prefix []byte, fn func(key, value []byte) bool) error {
	var decryptErr error
	err := e.KV.Scan(ctx, prefix, func(key, value []byte) bool {
		pt, err := e.cipher.Decrypt(value, key)
		if err != nil {
			decryptErr = fmt.Errorf("decrypt %q: %w", key, err)
			return false
		}
		return fn(key, pt)
	})
	if err != nil {
		return err
	}
	return decryptErr
}
