// Package storage provides the embedded key-value stores behind the
// console's durable session state and the stub backend's records.
//
//   - kv.go: the KV interface, configuration and engine factory
//   - badger.go: Badger v3 engine (default)
//   - bolt.go: single-file BoltDB engine
//   - memory.go: in-process engine for tests and throwaway sessions
//   - encrypted.go: value encryption wrapper for secrets at rest
package storage
