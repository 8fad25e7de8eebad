package cache

// Geometry of the three stores. It is fixed for the lifetime of a
// Hierarchy.
const (
	L1Lines = 1 << indexBits
	VCLines = 4
	L2Sets  = 1 << indexBits
	L2Ways  = 8
)

// A Line is one cache line. The zero value is an empty (invalid) line.
//
// The width of Tag depends on the store holding the line: 6 bits in L1 and
// L2, 10 bits in the victim cache (see VictimTag).
type Line struct {
	Tag     uint32
	Data    int32
	IsValid bool
	// Recency is an LRU age. 0 is the most recently placed line and larger
	// values are older. It is only meaningful inside the victim cache and
	// inside one L2 set.
	Recency int
}

// matches reports whether the line holds valid data with the given tag.
func (l Line) matches(tag uint32) bool {
	return l.IsValid && l.Tag == tag
}

// selectVictim picks the slot of set that a new line should be placed into.
//
// The first invalid slot wins and is not an eviction. Otherwise the valid
// slot with the strictly greatest Recency is chosen, the lowest slot
// winning ties, and isEviction is true.
func selectVictim(set []Line) (slot int, isEviction bool) {
	for i := range set {
		if !set[i].IsValid {
			return i, false
		}

		if set[i].Recency > set[slot].Recency {
			slot = i
		}
	}

	return slot, true
}

// place writes line into set[slot] and updates recency: every valid line
// ages by one, then the placed slot becomes the youngest.
func place(set []Line, slot int, line Line) {
	set[slot] = line
	age(set)
	set[slot].Recency = 0
}

// age increments the Recency of every valid line in set.
func age(set []Line) {
	for i := range set {
		if set[i].IsValid {
			set[i].Recency++
		}
	}
}
