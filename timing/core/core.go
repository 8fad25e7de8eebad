// Package core provides the trace-driven driver of the cache hierarchy.
// It owns the memory and the hierarchy and replays operations strictly in
// order.
package core

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/vcsim/emu"
	"github.com/sarchlab/vcsim/loader"
	"github.com/sarchlab/vcsim/timing/cache"
)

// Option configures a Core.
type Option func(*Core)

// WithMemory makes the core use an existing memory instead of a fresh one.
func WithMemory(memory *emu.Memory) Option {
	return func(c *Core) {
		c.memory = memory
	}
}

// WithHook registers a hook on the hierarchy.
func WithHook(hook sim.Hook) Option {
	return func(c *Core) {
		c.hooks = append(c.hooks, hook)
	}
}

// Core replays traces through a cache hierarchy.
type Core struct {
	memory    *emu.Memory
	hierarchy *cache.Hierarchy
	hooks     []sim.Hook
	replayed  uint64
}

// NewCore creates a Core with an all-invalid hierarchy.
func NewCore(opts ...Option) *Core {
	c := &Core{}
	for _, opt := range opts {
		opt(c)
	}

	if c.memory == nil {
		c.memory = emu.NewMemory()
	}

	c.hierarchy = cache.New(cache.NewMemoryBacking(c.memory))
	for _, hook := range c.hooks {
		c.hierarchy.AcceptHook(hook)
	}

	return c
}

// Memory returns the backing memory.
func (c *Core) Memory() *emu.Memory {
	return c.memory
}

// Hierarchy returns the cache hierarchy.
func (c *Core) Hierarchy() *cache.Hierarchy {
	return c.hierarchy
}

// Stats returns the hierarchy statistics.
func (c *Core) Stats() cache.Stats {
	return c.hierarchy.Stats()
}

// Replayed returns the number of operations executed so far.
func (c *Core) Replayed() uint64 {
	return c.replayed
}

// Step executes one operation.
func (c *Core) Step(op loader.Operation) cache.AccessResult {
	c.replayed++
	return c.hierarchy.Access(op.Op, op.Addr, op.Data)
}

// Run executes every operation of the trace and returns the final
// statistics.
func (c *Core) Run(trace *loader.Trace) cache.Stats {
	for _, op := range trace.Ops {
		c.Step(op)
	}

	return c.Stats()
}
