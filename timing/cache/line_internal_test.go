package cache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Victim selection", func() {
	valid := func(recency int) Line {
		return Line{IsValid: true, Recency: recency}
	}

	It("should pick slot 0 of an empty set without evicting", func() {
		slot, isEviction := selectVictim(make([]Line, 4))
		Expect(slot).To(Equal(0))
		Expect(isEviction).To(BeFalse())
	})

	It("should prefer the first invalid slot over older lines", func() {
		set := []Line{valid(9), valid(12), {}, {}}
		slot, isEviction := selectVictim(set)
		Expect(slot).To(Equal(2))
		Expect(isEviction).To(BeFalse())
	})

	It("should evict the line with the greatest recency", func() {
		set := []Line{valid(1), valid(3), valid(0), valid(2)}
		slot, isEviction := selectVictim(set)
		Expect(slot).To(Equal(1))
		Expect(isEviction).To(BeTrue())
	})

	It("should break ties by the lowest slot", func() {
		set := []Line{valid(1), valid(4), valid(4), valid(2)}
		slot, _ := selectVictim(set)
		Expect(slot).To(Equal(1))
	})

	It("should age valid lines and make the placed line youngest", func() {
		set := []Line{valid(0), {}, valid(1), {}}
		place(set, 1, Line{Tag: 7, IsValid: true, Recency: 42})

		Expect(set[0].Recency).To(Equal(1))
		Expect(set[1].Recency).To(Equal(0))
		Expect(set[1].Tag).To(Equal(uint32(7)))
		Expect(set[2].Recency).To(Equal(2))
		Expect(set[3].Recency).To(Equal(0))
		Expect(set[3].IsValid).To(BeFalse())
	})

	It("should leave an invalid placed line invalid", func() {
		set := []Line{valid(0), {}}
		place(set, 1, Line{Tag: 3})

		Expect(set[1].IsValid).To(BeFalse())
		Expect(set[0].Recency).To(Equal(1))
	})
})
