package cache

// Address geometry of the simulated machine. The address space is 12 bits
// wide: 6 tag bits, 4 index bits and 2 block offset bits.
const (
	// AddressBits is the width of a memory address.
	AddressBits = 12
	// MaxAddress is the highest addressable word.
	MaxAddress Address = 1<<AddressBits - 1

	offsetBits = 2
	indexBits  = 4
	tagBits    = AddressBits - indexBits - offsetBits

	offsetMask = 1<<offsetBits - 1
	indexMask  = 1<<indexBits - 1
	tagMask    = 1<<tagBits - 1
)

// Address is a 12-bit word address.
type Address uint16

// Fields is an address split into its tag, index and block offset.
type Fields struct {
	Tag    uint32
	Index  uint32
	Offset uint32
}

// Decompose splits an address into tag (bits 11:6), index (bits 5:2) and
// block offset (bits 1:0).
func Decompose(addr Address) Fields {
	a := uint32(addr)
	return Fields{
		Tag:    (a >> (offsetBits + indexBits)) & tagMask,
		Index:  (a >> offsetBits) & indexMask,
		Offset: a & offsetMask,
	}
}

// VictimTag returns the 10-bit tag a line carries while it lives in the
// victim cache. The victim cache has no index, so the L1 index is folded
// into the tag.
func VictimTag(tag, index uint32) uint32 {
	return tag<<indexBits | index&indexMask
}

// SplitVictimTag undoes VictimTag, returning the 6-bit tag and the 4-bit
// index the line belongs to in L1 and L2.
func SplitVictimTag(vcTag uint32) (tag, index uint32) {
	return vcTag >> indexBits, vcTag & indexMask
}
