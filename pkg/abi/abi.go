// Package abi encodes values using the Ethereum contract ABI tuple layout.
//
// Only the two kinds needed for header commitments are supported: dynamic
// byte strings and static 256-bit unsigned integers. A tuple is encoded as a
// head of one 32-byte slot per value, followed by a tail holding the
// dynamic values. A static value is stored inline in its head slot; a
// dynamic value's head slot holds the byte offset of its tail entry,
// measured from the start of the encoding. A tail entry is the 32-byte
// big-endian length followed by the data, right-padded with zeros to a
// multiple of 32 bytes.
package abi

import (
	"math/big"

	"github.com/bsv-blockchain/headerproof/errors"
	"github.com/bsv-blockchain/headerproof/util/uint256"
	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
)

// SlotSize is the size of one ABI word.
const SlotSize = 32

var (
	bytesType   = mustNewType("bytes")
	uint256Type = mustNewType("uint256")
)

func mustNewType(t string) gethabi.Type {
	typ, err := gethabi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}

	return typ
}

type kind int

const (
	kindBytes kind = iota
	kindUint256
)

// Value is a single ABI-encodable value.
type Value struct {
	kind  kind
	data  []byte
	words [4]uint64
}

// Bytes is a dynamic `bytes` value.
func Bytes(b []byte) Value {
	if b == nil {
		b = []byte{}
	}

	return Value{kind: kindBytes, data: b}
}

// Uint256Words is a static `uint256` given as four 64-bit words, least
// significant first.
func Uint256Words(words [4]uint64) Value {
	return Value{kind: kindUint256, words: words}
}

// Uint256 is a static `uint256` value.
func Uint256(v uint256.Uint256) Value {
	return Uint256Words(v.Words())
}

func (v Value) dynamic() bool {
	return v.kind == kindBytes
}

func (v Value) argument() (gethabi.Argument, interface{}) {
	if v.dynamic() {
		return gethabi.Argument{Type: bytesType}, v.data
	}

	word := EncodeUint256Words(v.words)

	return gethabi.Argument{Type: uint256Type}, new(big.Int).SetBytes(word[:])
}

// EncodeUint256Words converts four little-endian ordered 64-bit words into
// the 32-byte big-endian ABI word: the most significant word is written
// first.
func EncodeUint256Words(words [4]uint64) [SlotSize]byte {
	return uint256.FromWords(words).BigEndianBytes()
}

// EncodedSize returns the length of Encode(values...).
func EncodedSize(values ...Value) int {
	size := len(values) * SlotSize

	for _, v := range values {
		if v.dynamic() {
			size += SlotSize + (len(v.data)+SlotSize-1)/SlotSize*SlotSize
		}
	}

	return size
}

// Encode returns the ABI tuple encoding of values.
func Encode(values ...Value) ([]byte, error) {
	args := make(gethabi.Arguments, len(values))
	packed := make([]interface{}, len(values))

	for i, v := range values {
		args[i], packed[i] = v.argument()
	}

	out, err := args.Pack(packed...)
	if err != nil {
		return nil, errors.NewProcessingError("failed to encode %d abi values", len(values), err)
	}

	return out, nil
}
