package cache

import (
	"log"

	"github.com/sarchlab/akita/v4/sim"
)

// DebugHook prints every decision a Hierarchy makes in a human-readable
// form.
type DebugHook struct {
	sim.LogHookBase
}

// NewDebugHook creates a DebugHook that writes to logger.
func NewDebugHook(logger *log.Logger) *DebugHook {
	h := new(DebugHook)
	h.Logger = logger
	return h
}

// Func renders one hook invocation.
func (h *DebugHook) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case HookPosAccess:
		h.logAccess(ctx.Item.(AccessEvent))
	case HookPosProbe:
		h.logProbe(ctx.Detail.(ProbeEvent))
	case HookPosEvict:
		h.logEvict(ctx.Detail.(EvictEvent))
	case HookPosFill:
		h.logFill(ctx.Detail.(FillEvent))
	}
}

func (h *DebugHook) logAccess(e AccessEvent) {
	if e.Op == OpRead {
		h.Printf("Address: %d\tAction: Read", e.Addr)
	} else {
		h.Printf("Address: %d\tAction: Write\tData: %d", e.Addr, e.Data)
	}

	h.Printf("Tag: %d\t\tIndex: %d\tBlock offset: %d",
		e.Fields.Tag, e.Fields.Index, e.Fields.Offset)
}

func (h *DebugHook) logProbe(e ProbeEvent) {
	if e.Hit {
		h.Printf("%s cache hit!", e.Level)
		return
	}

	h.Printf("%s cache miss!", e.Level)
}

func (h *DebugHook) logEvict(e EvictEvent) {
	switch {
	case e.To == LevelNone:
		h.Printf("L2 set %d full, dropping tag %d from way %d",
			e.Index, e.Tag, e.Slot)
	case e.From == LevelVC:
		if e.Real {
			h.Printf("VC full, evicting tag %d to L2 index %d way %d",
				e.Tag, e.Index, e.Slot)
		} else {
			h.Printf("VC full, evicting tag %d to L2 index %d free way %d",
				e.Tag, e.Index, e.Slot)
		}
	default:
		h.Printf("%s evicted tag %d index %d into %s slot %d",
			e.From, e.Tag, e.Index, e.To, e.Slot)
	}
}

func (h *DebugHook) logFill(e FillEvent) {
	h.Printf("Bringing tag %d index %d from %s to L1 (data %d)",
		e.Tag, e.Index, e.Source, e.Data)
}
