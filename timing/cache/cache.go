// Package cache models a three-level cache hierarchy: a direct-mapped L1, a
// small fully associative victim cache and a set-associative L2, in front
// of a flat word-addressed memory.
//
// Misses cascade downwards. A line leaving L1 goes to the victim cache, a
// line leaving the victim cache goes to L2 and a line leaving L2 is dropped.
// Caches are write-through and write-no-allocate.
package cache

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
)

// Op is the kind of a memory operation.
type Op int

// Memory operations.
const (
	OpRead Op = iota
	OpWrite
)

func (o Op) String() string {
	if o == OpWrite {
		return "Write"
	}
	return "Read"
}

// Stats holds the access and miss counters of each cache level. Only reads
// are counted.
type Stats struct {
	AccL1  uint64
	MissL1 uint64
	AccVC  uint64
	MissVC uint64
	AccL2  uint64
	MissL2 uint64
}

// AccessResult contains the result of one access.
type AccessResult struct {
	// Data is the word read. For writes it echoes the written word.
	Data int32
	// Level is the level that served a read, or the level updated in place
	// by a write (LevelNone if no cache held the address).
	Level Level
	// Stats is a snapshot of the counters after the access.
	Stats Stats
}

// BackingStore is the memory below L2.
type BackingStore interface {
	// Read returns the word at addr.
	Read(addr Address) int32
	// Write stores a word at addr.
	Write(addr Address, data int32)
}

// Hierarchy is the cache controller. It owns L1, the victim cache and L2
// along with the statistics counters.
type Hierarchy struct {
	*sim.HookableBase

	l1 [L1Lines]Line
	vc [VCLines]Line
	l2 [L2Sets][L2Ways]Line

	stats   Stats
	backing BackingStore
}

// New creates a hierarchy with every line invalid.
func New(backing BackingStore) *Hierarchy {
	return &Hierarchy{
		HookableBase: sim.NewHookableBase(),
		backing:      backing,
	}
}

// Stats returns the statistics counters.
func (h *Hierarchy) Stats() Stats {
	return h.stats
}

// ResetStats clears the statistics counters.
func (h *Hierarchy) ResetStats() {
	h.stats = Stats{}
}

// Reset invalidates every line and clears the statistics. The backing
// store is left untouched.
func (h *Hierarchy) Reset() {
	h.l1 = [L1Lines]Line{}
	h.vc = [VCLines]Line{}
	h.l2 = [L2Sets][L2Ways]Line{}
	h.stats = Stats{}
}

// L1Line returns the L1 line at index.
func (h *Hierarchy) L1Line(index int) Line {
	return h.l1[index]
}

// VCLine returns the victim cache line at slot. Its tag is the 10-bit
// victim tag.
func (h *Hierarchy) VCLine(slot int) Line {
	return h.vc[slot]
}

// L2Line returns the line at the given L2 set and way.
func (h *Hierarchy) L2Line(set, way int) Line {
	return h.l2[set][way]
}

// Read performs a read access.
func (h *Hierarchy) Read(addr Address) AccessResult {
	return h.Access(OpRead, addr, 0)
}

// Write performs a write access.
func (h *Hierarchy) Write(addr Address, data int32) AccessResult {
	return h.Access(OpWrite, addr, data)
}

// Access performs one memory operation, including any eviction cascade it
// triggers, before returning.
func (h *Hierarchy) Access(op Op, addr Address, data int32) AccessResult {
	if addr > MaxAddress {
		panic(fmt.Sprintf("address %d out of range", addr))
	}

	f := Decompose(addr)
	h.InvokeHook(sim.HookCtx{
		Domain: h,
		Pos:    HookPosAccess,
		Item:   AccessEvent{Op: op, Addr: addr, Data: data, Fields: f},
	})

	var result AccessResult
	if op == OpRead {
		result = h.read(addr, f)
	} else {
		result = h.write(addr, f, data)
	}

	result.Stats = h.stats

	return result
}

func (h *Hierarchy) read(addr Address, f Fields) AccessResult {
	h.stats.AccL1++
	if h.readL1(f) {
		return AccessResult{Data: h.l1[f.Index].Data, Level: LevelL1}
	}
	h.stats.MissL1++

	h.stats.AccVC++
	if h.readVC(f) {
		return AccessResult{Data: h.l1[f.Index].Data, Level: LevelVC}
	}
	h.stats.MissVC++

	h.stats.AccL2++
	if h.readL2(f) {
		return AccessResult{Data: h.l1[f.Index].Data, Level: LevelL2}
	}
	h.stats.MissL2++

	h.readMemory(addr, f)

	return AccessResult{Data: h.l1[f.Index].Data, Level: LevelMemory}
}

func (h *Hierarchy) readL1(f Fields) bool {
	hit := h.l1[f.Index].matches(f.Tag)
	h.probed(OpRead, LevelL1, hit)

	return hit
}

// readVC swaps a victim cache hit with the line currently in L1.
func (h *Hierarchy) readVC(f Fields) bool {
	vcTag := VictimTag(f.Tag, f.Index)

	for slot := range h.vc {
		if !h.vc[slot].matches(vcTag) {
			continue
		}

		h.probed(OpRead, LevelVC, true)

		evicted := h.l1[f.Index]
		h.l1[f.Index] = h.vc[slot]
		h.l1[f.Index].Tag = f.Tag

		evicted.Tag = VictimTag(evicted.Tag, f.Index)
		h.vc[slot] = evicted
		age(h.vc[:])
		h.vc[slot].Recency = 0

		h.filled(LevelVC, f.Index)
		h.enteredVC(evicted, slot, true)

		return true
	}

	h.probed(OpRead, LevelVC, false)

	return false
}

// readL2 moves an L2 hit into L1 and pushes the displaced L1 line down.
func (h *Hierarchy) readL2(f Fields) bool {
	set := h.l2[f.Index][:]

	for way := range set {
		if !set[way].matches(f.Tag) {
			continue
		}

		h.probed(OpRead, LevelL2, true)

		line := set[way]
		// The way is freed so a block lives in exactly one level.
		set[way] = Line{}
		h.install(line, f.Index, LevelL2)

		return true
	}

	h.probed(OpRead, LevelL2, false)

	return false
}

func (h *Hierarchy) readMemory(addr Address, f Fields) {
	line := Line{
		Tag:     f.Tag,
		Data:    h.backing.Read(addr),
		IsValid: true,
	}

	h.install(line, f.Index, LevelMemory)
}

// install puts line into L1 at index and cascades whatever was there into
// the victim cache, even if it was invalid.
func (h *Hierarchy) install(line Line, index uint32, source Level) {
	evicted := h.l1[index]
	h.l1[index] = line
	h.filled(source, index)

	h.insertVC(evicted, index)
}

// insertVC places a line evicted from L1 at index into the victim cache. If
// the victim cache is full its oldest line moves to L2.
func (h *Hierarchy) insertVC(line Line, index uint32) {
	slot, isEviction := selectVictim(h.vc[:])

	if isEviction {
		h.insertL2(h.vc[slot])
	}

	line.Tag = VictimTag(line.Tag, index)
	place(h.vc[:], slot, line)
	h.enteredVC(line, slot, isEviction)
}

// insertL2 places a line evicted from the victim cache into the L2 set
// encoded in its tag. A displaced L2 line is dropped.
func (h *Hierarchy) insertL2(line Line) {
	tag, index := SplitVictimTag(line.Tag)
	set := h.l2[index][:]
	way, isEviction := selectVictim(set)

	if isEviction {
		h.invokeEvict(EvictEvent{
			From:  LevelL2,
			To:    LevelNone,
			Tag:   set[way].Tag,
			Index: index,
			Slot:  way,
			Real:  true,
		})
	}

	line.Tag = tag
	place(set, way, line)
	h.invokeEvict(EvictEvent{
		From:  LevelVC,
		To:    LevelL2,
		Tag:   tag,
		Index: index,
		Slot:  way,
		Real:  isEviction,
	})
}

// write updates the first level holding the address and then memory. It
// never changes statistics, recency or line placement.
func (h *Hierarchy) write(addr Address, f Fields, data int32) AccessResult {
	level := h.writeCaches(f, data)
	h.backing.Write(addr, data)

	return AccessResult{Data: data, Level: level}
}

func (h *Hierarchy) writeCaches(f Fields, data int32) Level {
	if h.l1[f.Index].matches(f.Tag) {
		h.l1[f.Index].Data = data
		h.probed(OpWrite, LevelL1, true)
		return LevelL1
	}
	h.probed(OpWrite, LevelL1, false)

	vcTag := VictimTag(f.Tag, f.Index)
	for slot := range h.vc {
		if h.vc[slot].matches(vcTag) {
			h.vc[slot].Data = data
			h.probed(OpWrite, LevelVC, true)
			return LevelVC
		}
	}
	h.probed(OpWrite, LevelVC, false)

	set := h.l2[f.Index][:]
	for way := range set {
		if set[way].matches(f.Tag) {
			set[way].Data = data
			h.probed(OpWrite, LevelL2, true)
			return LevelL2
		}
	}
	h.probed(OpWrite, LevelL2, false)

	return LevelNone
}

func (h *Hierarchy) probed(op Op, level Level, hit bool) {
	h.InvokeHook(sim.HookCtx{
		Domain: h,
		Pos:    HookPosProbe,
		Detail: ProbeEvent{Op: op, Level: level, Hit: hit},
	})
}

func (h *Hierarchy) filled(source Level, index uint32) {
	line := h.l1[index]
	h.InvokeHook(sim.HookCtx{
		Domain: h,
		Pos:    HookPosFill,
		Detail: FillEvent{
			Source: source,
			Tag:    line.Tag,
			Index:  index,
			Data:   line.Data,
		},
	})
}

// enteredVC reports a line moving from L1 into victim cache slot. vcLine
// carries the 10-bit tag.
func (h *Hierarchy) enteredVC(vcLine Line, slot int, isEviction bool) {
	if !vcLine.IsValid {
		return
	}

	tag, index := SplitVictimTag(vcLine.Tag)
	h.invokeEvict(EvictEvent{
		From:  LevelL1,
		To:    LevelVC,
		Tag:   tag,
		Index: index,
		Slot:  slot,
		Real:  isEviction,
	})
}

func (h *Hierarchy) invokeEvict(e EvictEvent) {
	h.InvokeHook(sim.HookCtx{
		Domain: h,
		Pos:    HookPosEvict,
		Detail: e,
	})
}
