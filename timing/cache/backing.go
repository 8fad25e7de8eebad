package cache

import (
	"github.com/sarchlab/vcsim/emu"
)

// MemoryBacking wraps emu.Memory as a BackingStore.
type MemoryBacking struct {
	memory *emu.Memory
}

// NewMemoryBacking creates a new MemoryBacking adapter.
func NewMemoryBacking(memory *emu.Memory) *MemoryBacking {
	return &MemoryBacking{memory: memory}
}

// Read fetches a word from the backing memory.
func (m *MemoryBacking) Read(addr Address) int32 {
	return m.memory.Read(uint64(addr))
}

// Write stores a word to the backing memory.
func (m *MemoryBacking) Write(addr Address, data int32) {
	m.memory.Write(uint64(addr), data)
}
