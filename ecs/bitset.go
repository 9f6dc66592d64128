package ecs

import (
	"math/bits"
	"strings"
)

// MaxKinds is the number of component and tag kinds a Bitset can describe.
const MaxKinds = 256

// Bitset holds one presence bit per registered component and tag.
// Components occupy bits [0, componentCount) and tags the bits right after them.
type Bitset [4]uint64

// Set enables the given bit.
func (b *Bitset) Set(bit int) {
	b[bit>>6] |= 1 << uint(bit&63)
}

// Clear disables the given bit.
func (b *Bitset) Clear(bit int) {
	b[bit>>6] &^= 1 << uint(bit&63)
}

// Test reports whether the given bit is set.
func (b Bitset) Test(bit int) bool {
	return b[bit>>6]&(1<<uint(bit&63)) != 0
}

// Reset clears every bit.
func (b *Bitset) Reset() {
	*b = Bitset{}
}

// Contains reports whether every bit set in sub is also set in b.
func (b Bitset) Contains(sub Bitset) bool {
	return b[0]&sub[0] == sub[0] &&
		b[1]&sub[1] == sub[1] &&
		b[2]&sub[2] == sub[2] &&
		b[3]&sub[3] == sub[3]
}

// Count returns the number of set bits.
func (b Bitset) Count() int {
	return bits.OnesCount64(b[0]) + bits.OnesCount64(b[1]) +
		bits.OnesCount64(b[2]) + bits.OnesCount64(b[3])
}

// IsZero reports whether no bit is set.
func (b Bitset) IsZero() bool {
	return b[0]|b[1]|b[2]|b[3] == 0
}

// Format renders the first n bits, lowest bit first.
func (b Bitset) Format(n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		if b.Test(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
