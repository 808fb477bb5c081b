// Package bitutil implements the 64-bit bitboard primitives used by move
// generation and hashing: single-bit manipulation, population count, and
// forward/reverse bit scans.
package bitutil

import "math/bits"

// Bitboard is a 64-bit word with one bit per board square.
// Bit 0 is a8 (top-left from White's view), bit 63 is h1.
type Bitboard uint64

// deBruijn64 is the multiplier of the de Bruijn bit scan scheme.
// See https://www.chessprogramming.org/BitScan.
const deBruijn64 = 0x03f79d71b4cb0a89

// bitScanLookup maps de Bruijn indices to bit positions.
var bitScanLookup = [64]int{
	0, 1, 48, 2, 57, 49, 28, 3,
	61, 58, 50, 42, 38, 29, 17, 4,
	62, 55, 59, 36, 53, 51, 43, 22,
	45, 39, 33, 30, 24, 18, 12, 5,
	63, 47, 56, 27, 60, 41, 37, 16,
	54, 35, 52, 21, 44, 32, 23, 11,
	46, 26, 40, 15, 34, 20, 31, 10,
	25, 14, 19, 9, 13, 8, 7, 6,
}

// Set turns on the bit at index i.
func (b *Bitboard) Set(i int) { *b |= 1 << uint(i) }

// Clear turns off the bit at index i.
func (b *Bitboard) Clear(i int) { *b &^= 1 << uint(i) }

// IsSet reports whether the bit at index i is on.
func (b Bitboard) IsSet(i int) bool { return b&(1<<uint(i)) != 0 }

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int { return bits.OnesCount64(uint64(b)) }

// ScanForward returns the index of the least significant set bit using a
// de Bruijn multiply and lookup. The result is undefined when b is zero;
// callers must guarantee a non-empty bitboard.
func (b Bitboard) ScanForward() int {
	return bitScanLookup[uint64(b&-b)*deBruijn64>>58]
}

// ScanReverse returns the index of the most significant set bit, the floor
// of log2(b). The result is undefined when b is zero.
func (b Bitboard) ScanReverse() int {
	return bits.Len64(uint64(b)) - 1
}

// PopLSB clears the least significant set bit and returns its index.
// Returns -1 if the bitboard is empty.
func (b *Bitboard) PopLSB() int {
	if *b == 0 {
		return -1
	}
	i := b.ScanForward()
	*b &= *b - 1
	return i
}
