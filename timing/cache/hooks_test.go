package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/vcsim/emu"
	"github.com/sarchlab/vcsim/timing/cache"
)

var _ = Describe("Hierarchy hooks", func() {
	var (
		mockCtrl *gomock.Controller
		hook     *MockHook
		h        *cache.Hierarchy
		ctxs     []sim.HookCtx
	)

	positions := func() []*sim.HookPos {
		pos := make([]*sim.HookPos, 0, len(ctxs))
		for _, ctx := range ctxs {
			pos = append(pos, ctx.Pos)
		}
		return pos
	}

	evictions := func() []cache.EvictEvent {
		var events []cache.EvictEvent
		for _, ctx := range ctxs {
			if ctx.Pos == cache.HookPosEvict {
				events = append(events, ctx.Detail.(cache.EvictEvent))
			}
		}
		return events
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		hook = NewMockHook(mockCtrl)
		ctxs = nil

		hook.EXPECT().Func(gomock.Any()).
			Do(func(ctx sim.HookCtx) { ctxs = append(ctxs, ctx) }).
			AnyTimes()

		memory := emu.NewMemory()
		h = cache.New(cache.NewMemoryBacking(memory))
		h.AcceptHook(hook)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should report a cold read", func() {
		h.Read(addrOf(1, 2) + 1)

		Expect(positions()).To(Equal([]*sim.HookPos{
			cache.HookPosAccess,
			cache.HookPosProbe,
			cache.HookPosProbe,
			cache.HookPosProbe,
			cache.HookPosFill,
		}))

		access := ctxs[0].Item.(cache.AccessEvent)
		Expect(access.Op).To(Equal(cache.OpRead))
		Expect(access.Addr).To(Equal(addrOf(1, 2) + 1))
		Expect(access.Fields).To(Equal(cache.Fields{Tag: 1, Index: 2, Offset: 1}))

		Expect(ctxs[1].Detail).To(Equal(cache.ProbeEvent{
			Op: cache.OpRead, Level: cache.LevelL1, Hit: false,
		}))
		Expect(ctxs[3].Detail).To(Equal(cache.ProbeEvent{
			Op: cache.OpRead, Level: cache.LevelL2, Hit: false,
		}))

		fill := ctxs[4].Detail.(cache.FillEvent)
		Expect(fill.Source).To(Equal(cache.LevelMemory))
		Expect(fill.Tag).To(Equal(uint32(1)))
		Expect(fill.Index).To(Equal(uint32(2)))
	})

	It("should stop probing at an L1 hit", func() {
		h.Read(addrOf(1, 2))
		ctxs = nil

		h.Read(addrOf(1, 2))

		Expect(positions()).To(Equal([]*sim.HookPos{
			cache.HookPosAccess,
			cache.HookPosProbe,
		}))
		Expect(ctxs[1].Detail.(cache.ProbeEvent).Hit).To(BeTrue())
	})

	It("should report the L1 line moving into the victim cache", func() {
		h.Read(addrOf(1, 2))
		h.Read(addrOf(2, 2))

		Expect(evictions()).To(Equal([]cache.EvictEvent{{
			From:  cache.LevelL1,
			To:    cache.LevelVC,
			Tag:   1,
			Index: 2,
			Slot:  0,
		}}))
	})

	It("should report a victim cache hit as a fill and a swap", func() {
		h.Read(addrOf(1, 2))
		h.Read(addrOf(2, 2))
		ctxs = nil

		h.Read(addrOf(1, 2))

		Expect(positions()).To(Equal([]*sim.HookPos{
			cache.HookPosAccess,
			cache.HookPosProbe,
			cache.HookPosProbe,
			cache.HookPosFill,
			cache.HookPosEvict,
		}))
		Expect(ctxs[3].Detail.(cache.FillEvent).Source).To(Equal(cache.LevelVC))
		Expect(ctxs[4].Detail).To(Equal(cache.EvictEvent{
			From:  cache.LevelL1,
			To:    cache.LevelVC,
			Tag:   2,
			Index: 2,
			Slot:  0,
			Real:  true,
		}))
	})

	It("should report the victim cache spilling into L2", func() {
		for tag := uint32(1); tag <= 6; tag++ {
			h.Read(addrOf(tag, 2))
		}

		events := evictions()
		Expect(events).To(ContainElement(cache.EvictEvent{
			From:  cache.LevelVC,
			To:    cache.LevelL2,
			Tag:   1,
			Index: 2,
			Slot:  0,
		}))
	})

	It("should report lines dropped from a full L2 set", func() {
		for tag := uint32(0); tag <= 13; tag++ {
			h.Read(addrOf(tag, 9))
		}

		Expect(evictions()).To(ContainElement(cache.EvictEvent{
			From:  cache.LevelL2,
			To:    cache.LevelNone,
			Tag:   0,
			Index: 9,
			Slot:  0,
			Real:  true,
		}))
	})

	It("should never report evictions or fills for writes", func() {
		for tag := uint32(1); tag <= 6; tag++ {
			h.Read(addrOf(tag, 2))
		}
		ctxs = nil

		h.Write(addrOf(1, 2), 5)
		h.Write(addrOf(6, 2), 6)
		h.Write(addrOf(9, 9), 7)

		for _, ctx := range ctxs {
			Expect(ctx.Pos).NotTo(Equal(cache.HookPosEvict))
			Expect(ctx.Pos).NotTo(Equal(cache.HookPosFill))
		}
	})
})
