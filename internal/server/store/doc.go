// Package store keeps the mock backend's records in a storage.KV.
//
// Each collection is a set of JSON documents keyed
// rec/<collection>/<zero-padded id>; the last issued id lives under
// seq/<collection>. Keys sort in id order, so listings need no sorting.
// Every mutation runs under one store-wide mutex, which keeps id
// allocation and read-modify-write updates consistent across engines.
package store
