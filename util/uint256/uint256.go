// Package uint256 is the fixed-width unsigned 256-bit integer used for
// proof-of-work targets, block hashes and work values.
//
// A Uint256 is four 64-bit words in little-endian word order: word 0 holds the
// least significant 64 bits. This is the limb layout of holiman/uint256, which
// does the arithmetic. Values are plain arrays, so every operation returns a
// new value and never mutates its receiver.
package uint256

import (
	"math/big"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/ethereum/go-ethereum/common/hexutil"
	holiman "github.com/holiman/uint256"
)

// Size is the number of bytes in the serialized form.
const Size = 32

type Uint256 [4]uint64

var (
	// Zero is 0.
	Zero = Uint256{}

	// One is 1.
	One = Uint256{1, 0, 0, 0}

	// Max is 2^256 - 1.
	Max = Uint256{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}
)

func (z Uint256) toInt() *holiman.Int {
	x := holiman.Int(z)
	return &x
}

func fromInt(x *holiman.Int) Uint256 {
	return Uint256(*x)
}

// FromUint64 returns v as a Uint256.
func FromUint64(v uint64) Uint256 {
	return fromInt(holiman.NewInt(v))
}

// FromWords builds a value from four little-endian ordered 64-bit words.
func FromWords(words [4]uint64) Uint256 {
	return Uint256(words)
}

// Words returns the four 64-bit words, least significant first.
func (z Uint256) Words() [4]uint64 {
	return [4]uint64(z)
}

// FromBigEndian interprets b as a big-endian 256-bit number.
func FromBigEndian(b [Size]byte) Uint256 {
	return fromInt(new(holiman.Int).SetBytes32(b[:]))
}

// FromLittleEndian interprets b as a little-endian 256-bit number.
func FromLittleEndian(b [Size]byte) Uint256 {
	return fromInt(new(holiman.Int).SetBytes32(bt.ReverseBytes(b[:])))
}

// BigEndianBytes returns the 32-byte big-endian encoding.
func (z Uint256) BigEndianBytes() [Size]byte {
	return z.toInt().Bytes32()
}

// LittleEndianBytes returns the 32-byte little-endian encoding.
func (z Uint256) LittleEndianBytes() [Size]byte {
	be := z.BigEndianBytes()
	return [Size]byte(bt.ReverseBytes(be[:]))
}

// FromBig converts a non-negative big.Int. The second return value is false
// when x is negative or does not fit in 256 bits.
func FromBig(x *big.Int) (Uint256, bool) {
	if x.Sign() < 0 {
		return Zero, false
	}

	v, overflow := holiman.FromBig(x)
	if overflow {
		return Zero, false
	}

	return fromInt(v), true
}

// Big returns z as a big.Int.
func (z Uint256) Big() *big.Int {
	return z.toInt().ToBig()
}

func (z Uint256) IsZero() bool {
	return z.toInt().IsZero()
}

// IsMax reports whether z == 2^256 - 1.
func (z Uint256) IsMax() bool {
	return z == Max
}

// Cmp returns -1, 0 or +1 depending on whether z is less than, equal to or
// greater than x.
func (z Uint256) Cmp(x Uint256) int {
	return z.toInt().Cmp(x.toInt())
}

// BitLen returns the number of bits needed to represent z; 0 for zero.
func (z Uint256) BitLen() int {
	return z.toInt().BitLen()
}

// Not returns the bitwise complement of z, which is 2^256 - 1 - z.
func (z Uint256) Not() Uint256 {
	return fromInt(new(holiman.Int).Not(z.toInt()))
}

// Lsh returns z << n. Bits shifted past bit 255 are dropped.
func (z Uint256) Lsh(n uint) Uint256 {
	return fromInt(new(holiman.Int).Lsh(z.toInt(), n))
}

func (z Uint256) Rsh(n uint) Uint256 {
	return fromInt(new(holiman.Int).Rsh(z.toInt(), n))
}

// Add returns z + x and whether the sum overflowed 256 bits.
func (z Uint256) Add(x Uint256) (Uint256, bool) {
	sum, overflow := new(holiman.Int).AddOverflow(z.toInt(), x.toInt())
	return fromInt(sum), overflow
}

// AddOne returns z + 1 and whether the addition wrapped to zero.
func (z Uint256) AddOne() (Uint256, bool) {
	return z.Add(One)
}

// Sub returns z - x modulo 2^256.
func (z Uint256) Sub(x Uint256) Uint256 {
	return fromInt(new(holiman.Int).Sub(z.toInt(), x.toInt()))
}

// Quo returns z / d, truncated. It panics if d is zero, like math/big.
func (z Uint256) Quo(d Uint256) Uint256 {
	if d.IsZero() {
		panic("uint256: division by zero")
	}

	return fromInt(new(holiman.Int).Div(z.toInt(), d.toInt()))
}

// String returns z as 0x-prefixed, zero-padded, 64-digit hex.
func (z Uint256) String() string {
	b := z.BigEndianBytes()
	return hexutil.Encode(b[:])
}
