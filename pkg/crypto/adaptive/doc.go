// Package adaptive provides authenticated encryption with automatic
// algorithm selection.
//
// AES-GCM is used where the CPU accelerates AES and ChaCha20-Poly1305
// elsewhere. Ciphertexts carry their nonce as a prefix. Keys can be derived
// from a passphrase with KeyFromPassphrase.
package adaptive
