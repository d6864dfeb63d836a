// Package work provides utilities for calculating blockchain proof-of-work values.
//
// The work value represents the expected number of hash operations required to produce
// a block with the given difficulty target:
//
//	work = floor(2^256 / (target + 1))
//
// A lower target (higher difficulty) yields more work. All arithmetic is done in
// fixed-width 256-bit integers.
package work

import (
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/headerproof/model"
	"github.com/bsv-blockchain/headerproof/util/uint256"
)

// CalcWork returns floor(2^256 / (target + 1)).
//
// 2^256 itself does not fit in 256 bits, so the quotient is computed as
// (2^256 - 1 - target) / (target + 1) + 1, which is exact for every target
// below the maximum. The two edge cases are handled separately:
//   - target == Max: the divisor would overflow; the work is exactly 1
//   - target == 0: the true work is 2^256; it saturates to Max
func CalcWork(target uint256.Uint256) uint256.Uint256 {
	if target.IsMax() {
		return uint256.One
	}

	if target.IsZero() {
		return uint256.Max
	}

	divisor, _ := target.AddOne()

	work, _ := target.Not().Quo(divisor).AddOne()

	return work
}

// CalcBlockWork resolves the compact target and returns the work it represents.
//
// Parameters:
//   - nBits: The difficulty target in compact representation
//
// Returns:
//   - uint256.Uint256: The work for a single block
//   - error: ERR_MALFORMED_HEADER when nBits is negative or overflows 256 bits
func CalcBlockWork(nBits model.NBit) (uint256.Uint256, error) {
	target, err := nBits.Target()
	if err != nil {
		return uint256.Zero, err
	}

	return CalcWork(target), nil
}

// ToWords returns the work as four 64-bit words, least significant first.
func ToWords(work uint256.Uint256) [4]uint64 {
	return work.Words()
}

// FromWords is the inverse of ToWords.
func FromWords(words [4]uint64) uint256.Uint256 {
	return uint256.FromWords(words)
}

// CalculateChainWork calculates the cumulative work for a block given the previous work and difficulty.
// This function computes the total proof-of-work by adding the work required for the current
// block (based on its difficulty target) to the cumulative work of all previous blocks.
//
// Work values are carried as hashes, i.e. 32 bytes in little-endian order, so the
// result displays the same way a node reports chainwork. The sum saturates at
// 2^256 - 1.
//
// Parameters:
//   - prevWork: The cumulative work of all previous blocks in the chain
//   - nBits: The difficulty target for the current block in compact representation
//
// Returns:
//   - *chainhash.Hash: The new cumulative work value as a hash
//   - error: ERR_MALFORMED_HEADER when nBits does not expand to a valid target
func CalculateChainWork(prevWork *chainhash.Hash, nBits model.NBit) (*chainhash.Hash, error) {
	blockWork, err := CalcBlockWork(nBits)
	if err != nil {
		return nil, err
	}

	newWork, overflow := uint256.FromLittleEndian(*prevWork).Add(blockWork)
	if overflow {
		newWork = uint256.Max
	}

	hash := chainhash.Hash(newWork.LittleEndianBytes())

	return &hash, nil
}
