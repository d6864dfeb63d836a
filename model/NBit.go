package model

import (
	"encoding/binary"
	"encoding/hex"
	"math/big"
	"math/bits"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/headerproof/errors"
	"github.com/bsv-blockchain/headerproof/util/uint256"
)

const (
	nBitSignBit      = 0x00800000
	nBitMantissaMask = 0x007fffff

	// mainPowLimitBits is the compact form of the mainnet proof-of-work
	// limit, the reference for difficulty 1.
	mainPowLimitBits = 0x1d00ffff
)

// NBit is the compact difficulty target as it appears in the header: four
// bytes, little-endian.
type NBit [4]byte

func NewNBitFromUint32(compact uint32) NBit {
	var n NBit

	binary.LittleEndian.PutUint32(n[:], compact)

	return n
}

// NewNBitFromSlice takes the four bytes in header (little-endian) order.
func NewNBitFromSlice(nBits []byte) (*NBit, error) {
	if len(nBits) != 4 {
		return nil, errors.NewMalformedHeaderError("nBits should be 4 bytes long, got %d", len(nBits))
	}

	var n NBit

	copy(n[:], nBits)

	return &n, nil
}

// NewNBitFromString parses the conventional big-endian hex form, e.g. "1d00ffff".
func NewNBitFromString(nBitStr string) (*NBit, error) {
	nBits, err := hex.DecodeString(nBitStr)
	if err != nil {
		return nil, errors.NewMalformedHeaderError("invalid nBits hex %q", nBitStr, err)
	}

	return NewNBitFromSlice(bt.ReverseBytes(nBits))
}

func (b NBit) Uint32() uint32 {
	return binary.LittleEndian.Uint32(b[:])
}

func (b NBit) CloneBytes() []byte {
	return []byte{b[0], b[1], b[2], b[3]}
}

// String returns the big-endian hex form.
func (b NBit) String() string {
	return hex.EncodeToString(bt.ReverseBytes(b.CloneBytes()))
}

// Exponent is the base-256 exponent in the top byte.
func (b NBit) Exponent() uint {
	return uint(b[3])
}

// Mantissa is the low 23 bits, without the sign bit.
func (b NBit) Mantissa() uint32 {
	return b.Uint32() & nBitMantissaMask
}

func (b NBit) IsNegative() bool {
	return b.Uint32()&nBitSignBit != 0
}

// Target converts the compact representation to the full 256-bit target.
//
// The compact form is an exponent byte followed by a signed 24-bit mantissa:
//
//	-------------------------------------------------
//	|   Exponent     |    Sign    |    Mantissa     |
//	-------------------------------------------------
//	| 8 bits [31-24] | 1 bit [23] | 23 bits [22-00] |
//	-------------------------------------------------
//
// and N = mantissa * 256^(exponent-3). Targets are unsigned, so a set sign
// bit is rejected, as is any exponent that pushes a nonzero mantissa past
// 256 bits.
func (b NBit) Target() (uint256.Uint256, error) {
	if b.IsNegative() {
		return uint256.Zero, errors.NewMalformedHeaderError("nBits %s encodes a negative target", b.String())
	}

	mantissa := b.Mantissa()
	exponent := b.Exponent()

	if exponent <= 3 {
		return uint256.FromUint64(uint64(mantissa >> (8 * (3 - exponent)))), nil
	}

	shift := 8 * (exponent - 3)
	if mantissa != 0 && uint(bits.Len32(mantissa))+shift > 256 {
		return uint256.Zero, errors.NewMalformedHeaderError("nBits %s encodes a target wider than 256 bits", b.String())
	}

	return uint256.FromUint64(uint64(mantissa)).Lsh(shift), nil
}

// CalculateDifficulty returns the difficulty relative to the mainnet
// proof-of-work limit. It is informational only and returns nil for bits
// that do not expand to a positive target.
func (b NBit) CalculateDifficulty() *big.Float {
	target, err := b.Target()
	if err != nil || target.IsZero() {
		return nil
	}

	powLimit, _ := NewNBitFromUint32(mainPowLimitBits).Target()

	return new(big.Float).Quo(new(big.Float).SetInt(powLimit.Big()), new(big.Float).SetInt(target.Big()))
}
