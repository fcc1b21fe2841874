// Package state keeps per-chat conversation state behind a small Store
// interface. The memory store is the default; redis and SQL stores keep
// conversations across restarts and share them between replicas.
package state
