package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllOnes(t *testing.T) {
	assert.Equal(t, uint32(0xff), AllOnes[uint32](8))
	assert.Equal(t, uint32(0xffffffff), AllOnes[uint32](32))
	assert.Equal(t, uint64(0), AllOnes[uint64](0))
}

func TestBitView_ReadWrite(t *testing.T) {
	var value uint32
	view := CreateBitView(&value)

	view.Write(0b101, 4, 3)
	assert.Equal(t, uint32(0b1010000), view.Value())
	assert.Equal(t, uint32(0b101), view.Read(4, 3))

	view.SetBit(0)
	assert.Equal(t, uint32(0b1010001), value)
}

func TestWordMask_Size(t *testing.T) {
	assert.Len(t, NewWordMask(0), 0)
	assert.Len(t, NewWordMask(1), 1)
	assert.Len(t, NewWordMask(32), 1)
	assert.Len(t, NewWordMask(33), 2)
	assert.Equal(t, 64, NewWordMask(33).Len())
}

func TestWordMask_SetRange_StraddlingWords(t *testing.T) {
	mask := NewWordMask(64)
	mask.SetRange(30, 4)

	assert.Equal(t, WordMask{0xc0000000, 0x00000003}, mask)
	assert.Equal(t, 4, mask.Count())
	assert.Equal(t, []int{30, 31, 32, 33}, mask.Bits())
	assert.True(t, mask.Has(31))
	assert.True(t, mask.Has(32))
	assert.False(t, mask.Has(34))
	assert.False(t, mask.Has(-1))
	assert.False(t, mask.Has(64))
}

func TestFullWordMask_PadsLastWordWithZeros(t *testing.T) {
	mask := FullWordMask(40)

	require.Len(t, mask, 2)
	assert.Equal(t, uint32(0xffffffff), mask[0])
	assert.Equal(t, uint32(0x000000ff), mask[1])
	assert.Equal(t, 40, mask.Count())
}

func TestWordMask_SetOperations(t *testing.T) {
	low := NewWordMask(16)
	low.SetRange(0, 8)
	all := FullWordMask(16)
	high := NewWordMask(16)
	high.SetRange(8, 8)

	assert.True(t, low.IsSubsetOf(all))
	assert.False(t, all.IsSubsetOf(low))
	assert.True(t, low.And(high).IsZero())
	assert.True(t, low.Or(high).Equal(all))
	assert.False(t, low.Equal(high))
	assert.False(t, low.IsSubsetOf(NewWordMask(64)))
	assert.False(t, low.Equal(all))
	assert.False(t, all.Equal(low))
}

func TestWordMask_Equal(t *testing.T) {
	assert.True(t, WordMask{0x3}.Equal(WordMask{0x3}))
	assert.True(t, WordMask{}.Equal(WordMask{}))
	assert.False(t, WordMask{0x1}.Equal(WordMask{0x3}))
	assert.False(t, WordMask{0x3}.Equal(WordMask{0x1}))
	assert.False(t, WordMask{0x1, 0x0}.Equal(WordMask{0x1, 0x1}))
	assert.False(t, WordMask{0x1}.Equal(WordMask{0x1, 0x0}))
}

func TestWordMask_Hex(t *testing.T) {
	assert.Equal(t, "0x0", WordMask{}.Hex())
	assert.Equal(t, "0x0", WordMask{0, 0}.Hex())
	assert.Equal(t, "0xff", WordMask{0xff}.Hex())
	assert.Equal(t, "0x100000003", WordMask{3, 1}.Hex())
	assert.Equal(t, []string{"0x00000003", "0x00000001"}, WordMask{3, 1}.HexWords())
}
