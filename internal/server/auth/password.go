package auth

import (
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
)

// Hasher creates and checks argon2id password hashes.
type Hasher struct {
	params *argon2id.Params
}

// NewHasher returns a hasher using memoryKiB of memory per hash.
// Other parameters follow the OWASP minimum.
func NewHasher(memoryKiB uint32) *Hasher {
	return &Hasher{params: &argon2id.Params{
		Memory:      memoryKiB,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}}
}

// Hash returns the PHC-encoded hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	return argon2id.CreateHash(password, h.params)
}

// Check reports whether password matches hash. Malformed hashes are an
// error, never a panic.
func (h *Hasher) Check(password, hash string) (match bool, err error) {
	if !strings.HasPrefix(hash, "$argon2id$") {
		return false, fmt.Errorf("unsupported password hash")
	}
	defer func() {
		if r := recover(); r != nil {
			match = false
			err = fmt.Errorf("invalid argon2id hash parameters: %v", r)
		}
	}()
	return argon2id.ComparePasswordAndHash(password, hash)
}
