package model

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/headerproof/errors"
	"github.com/bsv-blockchain/headerproof/util/uint256"
)

// BlockHeaderSize is the serialized size of a block header in bytes.
const BlockHeaderSize = 80

// BlockHeader is the 80-byte Bitcoin block header. Hashes are held in
// internal byte order, the reverse of their display form.
type BlockHeader struct {
	// Version of the block.  This is not the same as the protocol version.
	Version int32

	// Hash of the previous block header in the blockchain.
	HashPrevBlock chainhash.Hash

	// Merkle tree reference to hash of all transactions for the block.
	HashMerkleRoot chainhash.Hash

	// Time the block was created in unix time.
	Timestamp uint32

	// Difficulty target for the block.
	Bits NBit

	// Nonce used to generate the block.
	Nonce uint32
}

// NewBlockHeaderFromBytes decodes the first 80 bytes of headerBytes. Any
// trailing bytes are ignored; fewer than 80 bytes is a malformed header.
func NewBlockHeaderFromBytes(headerBytes []byte) (*BlockHeader, error) {
	if len(headerBytes) < BlockHeaderSize {
		return nil, errors.NewMalformedHeaderError("block header should be %d bytes long, got %d", BlockHeaderSize, len(headerBytes))
	}

	headerBytes = headerBytes[:BlockHeaderSize]

	bh := &BlockHeader{
		//nolint:gosec // G115: version is a signed field on the wire
		Version:   int32(binary.LittleEndian.Uint32(headerBytes[0:4])),
		Timestamp: binary.LittleEndian.Uint32(headerBytes[68:72]),
		Nonce:     binary.LittleEndian.Uint32(headerBytes[76:80]),
	}

	copy(bh.HashPrevBlock[:], headerBytes[4:36])
	copy(bh.HashMerkleRoot[:], headerBytes[36:68])
	copy(bh.Bits[:], headerBytes[72:76])

	return bh, nil
}

// NewBlockHeaderFromString decodes a hex encoded header. Invalid hex is a
// malformed header, like short input.
func NewBlockHeaderFromString(headerHex string) (*BlockHeader, error) {
	headerBytes, err := hex.DecodeString(headerHex)
	if err != nil {
		return nil, errors.NewMalformedHeaderError("error decoding hex string to bytes", err)
	}

	return NewBlockHeaderFromBytes(headerBytes)
}

// Bytes returns the 80-byte consensus encoding of the header.
func (bh *BlockHeader) Bytes() []byte {
	blockHeaderBytes := make([]byte, BlockHeaderSize)

	//nolint:gosec // G115: version is a signed field on the wire
	binary.LittleEndian.PutUint32(blockHeaderBytes[0:4], uint32(bh.Version))
	copy(blockHeaderBytes[4:36], bh.HashPrevBlock[:])
	copy(blockHeaderBytes[36:68], bh.HashMerkleRoot[:])
	binary.LittleEndian.PutUint32(blockHeaderBytes[68:72], bh.Timestamp)
	copy(blockHeaderBytes[72:76], bh.Bits[:])
	binary.LittleEndian.PutUint32(blockHeaderBytes[76:80], bh.Nonce)

	return blockHeaderBytes
}

// Hash is the double SHA-256 of the header bytes, in internal byte order.
func (bh *BlockHeader) Hash() chainhash.Hash {
	return chainhash.DoubleHashH(bh.Bytes())
}

// Target expands the header's compact difficulty bits.
func (bh *BlockHeader) Target() (uint256.Uint256, error) {
	return bh.Bits.Target()
}

func (bh *BlockHeader) String() string {
	return fmt.Sprintf("version: %d, prev: %s, merkle: %s, time: %d, bits: %s, nonce: %d",
		bh.Version, bh.HashPrevBlock.String(), bh.HashMerkleRoot.String(), bh.Timestamp, bh.Bits.String(), bh.Nonce)
}
