package sync

import (
	"context"
	"sync"
)

// InFlight tracks keys that currently have an operation running. It is used
// to reject re-entrant calls: a second Enter for a key that has not been
// released fails instead of blocking. Keys are spread over 32 shards so
// unrelated keys do not contend.
type InFlight struct {
	shards [32]inflightShard
}

type inflightShard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewInFlight creates an empty guard.
func NewInFlight() *InFlight {
	g := &InFlight{}
	for i := range g.shards {
		g.shards[i].active = make(map[string]struct{})
	}
	return g
}

// Enter marks key as in flight. ok is false when key is already active; the
// caller must not proceed and must not call release.
func (g *InFlight) Enter(key string) (release func(), ok bool) {
	shard := &g.shards[g.shardFor(key)]
	shard.mu.Lock()
	defer shard.mu.Unlock()
	if _, busy := shard.active[key]; busy {
		return nil, false
	}
	shard.active[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			shard.mu.Lock()
			delete(shard.active, key)
			shard.mu.Unlock()
		})
	}, true
}

// Active reports whether key is currently in flight.
func (g *InFlight) Active(key string) bool {
	shard := &g.shards[g.shardFor(key)]
	shard.mu.Lock()
	defer shard.mu.Unlock()
	_, busy := shard.active[key]
	return busy
}

// shardFor returns the shard index for the given key.
// Empty keys default to shard 0.
func (g *InFlight) shardFor(key string) int {
	if key == "" {
		return 0
	}
	return int(hashString(key) % uint32(len(g.shards)))
}

// hashString provides a simple djb2-style hash for shard selection.
func hashString(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*31 + uint32(s[i])
	}
	return h
}

type contextKeyGuard struct{ name string }

// MarkEntered tags ctx as being inside the named guarded section.
func MarkEntered(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, contextKeyGuard{name: name}, true)
}

// Entered reports whether ctx descends from a MarkEntered call with name.
func Entered(ctx context.Context, name string) bool {
	v, _ := ctx.Value(contextKeyGuard{name: name}).(bool)
	return v
}
