package cache

import "github.com/sarchlab/akita/v4/sim"

// Hook positions at which a Hierarchy reports its decisions. Hooks only
// observe; they never change cache state.
var (
	// HookPosAccess fires once per access, before any lookup. The HookCtx
	// Item is an AccessEvent.
	HookPosAccess = &sim.HookPos{Name: "CacheAccess"}

	// HookPosProbe fires after each level is searched. The Detail is a
	// ProbeEvent.
	HookPosProbe = &sim.HookPos{Name: "CacheProbe"}

	// HookPosEvict fires when a line is pushed from one level into the next.
	// The Detail is an EvictEvent.
	HookPosEvict = &sim.HookPos{Name: "CacheEvict"}

	// HookPosFill fires when a line is installed in L1. The Detail is a
	// FillEvent.
	HookPosFill = &sim.HookPos{Name: "CacheFill"}
)

// Level names one level of the hierarchy.
type Level int

// Levels of the hierarchy, from fastest to slowest.
const (
	LevelNone Level = iota
	LevelL1
	LevelVC
	LevelL2
	LevelMemory
)

func (l Level) String() string {
	switch l {
	case LevelL1:
		return "L1"
	case LevelVC:
		return "VC"
	case LevelL2:
		return "L2"
	case LevelMemory:
		return "Memory"
	default:
		return "None"
	}
}

// AccessEvent describes an incoming access.
type AccessEvent struct {
	Op     Op
	Addr   Address
	Data   int32
	Fields Fields
}

// ProbeEvent tells whether a level held the requested address.
type ProbeEvent struct {
	Op    Op
	Level Level
	Hit   bool
}

// EvictEvent describes a line leaving From for To. Tag and Index are the
// line's 6-bit tag and index after any re-encoding. Slot is the position
// taken in To. Real is false when the line that would have been displaced
// from To was invalid.
type EvictEvent struct {
	From  Level
	To    Level
	Tag   uint32
	Index uint32
	Slot  int
	Real  bool
}

// FillEvent describes a line installed in L1 from Source.
type FillEvent struct {
	Source Level
	Tag    uint32
	Index  uint32
	Data   int32
}
