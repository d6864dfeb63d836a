// Package pow checks a block header hash against its difficulty target.
package pow

import (
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/headerproof/errors"
	"github.com/bsv-blockchain/headerproof/model"
	"github.com/bsv-blockchain/headerproof/util/uint256"
)

// HashToUint256 interprets the hash bytes as a little-endian number, which
// is how proof of work compares them.
func HashToUint256(hash chainhash.Hash) uint256.Uint256 {
	return uint256.FromLittleEndian(hash)
}

// CheckProofOfWork passes when the hash, as a number, does not exceed the
// target. A hash exactly equal to the target is valid.
func CheckProofOfWork(hash chainhash.Hash, target uint256.Uint256) error {
	if HashToUint256(hash).Cmp(target) <= 0 {
		return nil
	}

	err := errors.New(errors.ERR_PROOF_OF_WORK_INVALID, "block hash %s is above target %s", hash.String(), target.String())
	err.SetData("hash", hash.String())
	err.SetData("target", target.String())

	return err
}

// ValidateHeader resolves the header's target, hashes the header and checks
// the hash against the target.
//
// Returns:
//   - chainhash.Hash: The header hash, in internal byte order
//   - uint256.Uint256: The expanded target
//   - error: ERR_MALFORMED_HEADER for unusable bits, ERR_PROOF_OF_WORK_INVALID
//     when the hash is above the target
func ValidateHeader(header *model.BlockHeader) (chainhash.Hash, uint256.Uint256, error) {
	target, err := header.Target()
	if err != nil {
		return chainhash.Hash{}, uint256.Zero, err
	}

	hash := header.Hash()

	if err = CheckProofOfWork(hash, target); err != nil {
		return chainhash.Hash{}, uint256.Zero, err
	}

	return hash, target, nil
}
