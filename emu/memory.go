// Package emu provides the functional main memory behind the simulated
// caches.
package emu

import (
	"encoding/binary"
	"fmt"

	"github.com/sarchlab/akita/v4/mem/mem"
)

// MemSize is the number of words in memory.
const MemSize = 4096

// WordSize is the number of bytes a word occupies in storage.
const WordSize = 4

// Memory is a flat, word-addressed memory of MemSize signed 32-bit words.
// Every word starts at zero.
type Memory struct {
	storage *mem.Storage
}

// NewMemory creates a zeroed memory.
func NewMemory() *Memory {
	return &Memory{
		storage: mem.NewStorage(MemSize * WordSize),
	}
}

// Read returns the word at addr.
func (m *Memory) Read(addr uint64) int32 {
	mustBeInRange(addr)

	data, err := m.storage.Read(addr*WordSize, WordSize)
	if err != nil {
		panic(err)
	}

	return int32(binary.LittleEndian.Uint32(data))
}

// Write stores a word at addr.
func (m *Memory) Write(addr uint64, value int32) {
	mustBeInRange(addr)

	buf := make([]byte, WordSize)
	binary.LittleEndian.PutUint32(buf, uint32(value))

	if err := m.storage.Write(addr*WordSize, buf); err != nil {
		panic(err)
	}
}

// Load writes words into memory starting at address 0.
func (m *Memory) Load(words []int32) {
	for i, w := range words {
		m.Write(uint64(i), w)
	}
}

func mustBeInRange(addr uint64) {
	if addr >= MemSize {
		panic(fmt.Sprintf("memory address %d out of range", addr))
	}
}
