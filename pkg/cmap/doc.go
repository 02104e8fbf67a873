// Package cmap provides a concurrent map sharded by key hash.
//
// Each shard has its own RWMutex, so unrelated keys rarely contend. The
// mock backend keeps one rate limiter per client address in a Map.
//
// Usage:
//
//	m := cmap.New[string, *rate.Limiter]()
//	l, _ := m.GetOrSet(ip, rate.NewLimiter(10, 20))
//
// All operations are safe for concurrent use. Range and DeleteFunc visit
// shards one at a time, so they do not see a single consistent snapshot.
package cmap
