package utils

import (
	"math/bits"
	"strings"

	"golang.org/x/exp/constraints"
)

// Number of bits in each word of a WordMask
const WordBits = 32

// Returns an all ones bitmask of n bits of the given unsigned integer type
func AllOnes[T constraints.Unsigned](bits int) T {
	return (T(1) << bits) - T(1)
}

// Implements a read/write view over an unsigned interger, allowing manipullating individual bits easily
type BitView[T constraints.Unsigned] struct {
	Bits *T
}

// Returns the viewed unsigned int value
func (v BitView[T]) Value() T {
	return *v.Bits
}

// Extracts a range of bits given a first bit and a width
func (v BitView[T]) Read(bit int, width int) T {
	mask := AllOnes[T](width)
	return (v.Value() >> bit) & mask
}

// Copies a value into a range of bits, given the start and width of the range.
// All most significant bits of the value not fitting into the destination range are ignored.
func (v BitView[T]) Write(value T, bit int, width int) {
	clearedValue := value & AllOnes[T](width)
	*v.Bits = (*v.Bits) | (clearedValue << bit)
}

// Sets all bits in a range to 1
func (v BitView[T]) SetBits(bit int, width int) {
	v.Write(AllOnes[T](width), bit, width)
}

// Sets bit to 1
func (v BitView[T]) SetBit(bit int) {
	v.SetBits(bit, 1)
}

// Creates a bit view out of an unsigned int
func CreateBitView[T constraints.Unsigned](value *T) BitView[T] {
	return BitView[T]{
		Bits: value,
	}
}

// Fixed size bitset packed into 32 bit words. Bit i of word w represents bit 32*w + i.
//
// Masks created for the same number of bits always have the same number of words,
// so they can be combined word by word. Bits past the requested size are never set.
type WordMask []uint32

// Returns the number of words needed to store n bits
func WordsFor(n int) int {
	return (n + WordBits - 1) / WordBits
}

// Returns an all zeros mask able to hold n bits
func NewWordMask(n int) WordMask {
	return make(WordMask, WordsFor(n))
}

// Returns a mask able to hold n bits with the first n bits set
func FullWordMask(n int) WordMask {
	mask := NewWordMask(n)
	mask.SetRange(0, n)
	return mask
}

// Returns the number of bits the mask can hold
func (m WordMask) Len() int {
	return len(m) * WordBits
}

// Sets bit to 1
func (m WordMask) Set(bit int) {
	CreateBitView(&m[bit/WordBits]).SetBit(bit % WordBits)
}

// Sets width consecutive bits starting from bit. The range may straddle words
func (m WordMask) SetRange(bit int, width int) {
	for width > 0 {
		word, offset := bit/WordBits, bit%WordBits
		n := min(width, WordBits-offset)
		CreateBitView(&m[word]).SetBits(offset, n)
		bit += n
		width -= n
	}
}

// Returns whether bit is set. Bits out of the mask are reported as not set
func (m WordMask) Has(bit int) bool {
	if bit < 0 || bit >= m.Len() {
		return false
	}

	return CreateBitView(&m[bit/WordBits]).Read(bit%WordBits, 1) != 0
}

// Returns the number of set bits
func (m WordMask) Count() int {
	return Accumulate(m, func(word uint32) int { return bits.OnesCount32(word) })
}

// Returns whether no bit is set
func (m WordMask) IsZero() bool {
	for _, word := range m {
		if word != 0 {
			return false
		}
	}

	return true
}

// Returns the bitwise AND of two masks of the same size
func (m WordMask) And(other WordMask) WordMask {
	result := make(WordMask, len(m))

	for i := range m {
		result[i] = m[i] & other[i]
	}

	return result
}

// Returns the bitwise OR of two masks of the same size
func (m WordMask) Or(other WordMask) WordMask {
	result := make(WordMask, len(m))

	for i := range m {
		result[i] = m[i] | other[i]
	}

	return result
}

// Returns whether all bits set in m are also set in other
func (m WordMask) IsSubsetOf(other WordMask) bool {
	if len(m) != len(other) {
		return false
	}

	for i := range m {
		if m[i]&^other[i] != 0 {
			return false
		}
	}

	return true
}

// Returns whether both masks have the same size and bits
func (m WordMask) Equal(other WordMask) bool {
	if len(m) != len(other) {
		return false
	}

	for i := range m {
		if m[i] != other[i] {
			return false
		}
	}

	return true
}

// Returns the indices of all set bits in increasing order
func (m WordMask) Bits() []int {
	result := make([]int, 0, m.Count())

	for w, word := range m {
		for word != 0 {
			bit := bits.TrailingZeros32(word)
			result = append(result, w*WordBits+bit)
			word &= word - 1
		}
	}

	return result
}

// Returns each word formatted as a fixed width 0x%08x hex literal
func (m WordMask) HexWords() []string {
	return Map(m, func(word uint32) string {
		return FormatUintHex(uint64(word), WordBits/4)
	})
}

// Formats the whole mask as a single hex integer literal, most significant word first
func (m WordMask) Hex() string {
	var builder strings.Builder

	for i := len(m) - 1; i >= 0; i-- {
		if builder.Len() == 0 {
			if m[i] != 0 || i == 0 {
				builder.WriteString(FormatUintHex(uint64(m[i]), 1))
			}
		} else {
			builder.WriteString(FormatUintHex(uint64(m[i]), WordBits/4)[2:])
		}
	}

	if builder.Len() == 0 {
		return "0x0"
	}

	return builder.String()
}
