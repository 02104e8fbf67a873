// Package token generates random secrets and fingerprints bearer tokens.
//
// Secrets are crypto/rand bytes encoded as Base64 RawURL. Fingerprints
// are hex SHA-256 digests, short enough to log in place of the token.
package token
