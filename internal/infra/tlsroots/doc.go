// Package tlsroots loads TLS material for both binaries.
//
//   - roots.go: trusted CA pools for the console's API client
//   - watcher.go: certificate hot-reload for the stub backend via fsnotify
package tlsroots
