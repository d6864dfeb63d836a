package headerproof

import (
	"fmt"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/headerproof/errors"
	"github.com/bsv-blockchain/headerproof/model"
	hp "github.com/bsv-blockchain/headerproof/services/headerproof"
	"github.com/bsv-blockchain/headerproof/services/headerproof/pow"
	"github.com/bsv-blockchain/headerproof/services/headerproof/work"
	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// decodedHeader mirrors the header fields of a node's getblockheader output,
// plus the values the verifier derives.
type decodedHeader struct {
	Hash              string  `json:"hash"`
	Version           int32   `json:"version"`
	VersionHex        string  `json:"versionHex"`
	MerkleRoot        string  `json:"merkleroot"`
	Time              uint32  `json:"time"`
	Nonce             uint32  `json:"nonce"`
	Bits              string  `json:"bits"`
	Difficulty        float64 `json:"difficulty"`
	PreviousBlockHash string  `json:"previousblockhash"`
	Target            string  `json:"target"`
	Work              string  `json:"work"`
	ChainWork         string  `json:"chainwork"`
	PowValid          bool    `json:"powValid"`
	Error             string  `json:"error,omitempty"`

	ErrorData jsoniter.RawMessage `json:"errorData,omitempty"`
}

// decode prints the header without requiring it to pass proof of work. A
// header whose bits cannot be expanded is still a malformed header.
func (h *Host) decode(c *cli.Context) error {
	r, closeInput, err := h.input(c)
	if err != nil {
		return err
	}
	defer closeInput()

	input, err := hp.ReadInput(r, h.settings.HeaderProof.MaxInputBytes)
	if err != nil {
		return err
	}

	header, err := model.NewBlockHeaderFromBytes(input)
	if err != nil {
		return err
	}

	prevChainWork := &chainhash.Hash{}

	if s := c.String("prev-chainwork"); s != "" {
		if prevChainWork, err = chainhash.NewHashFromStr(s); err != nil {
			return errors.NewInvalidArgumentError("invalid --prev-chainwork %q", s, err)
		}
	}

	out, err := describeHeader(header, prevChainWork)
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return errors.NewProcessingError("failed to marshal header", err)
	}

	_, err = fmt.Fprintln(h.stdout, string(b))

	return err
}

// describeHeader derives the display fields of header. The chain work is
// prevChainWork plus the work of this header.
func describeHeader(header *model.BlockHeader, prevChainWork *chainhash.Hash) (*decodedHeader, error) {
	target, err := header.Target()
	if err != nil {
		return nil, err
	}

	hash := header.Hash()

	blockWork := work.CalcWork(target)

	chainWork, err := work.CalculateChainWork(prevChainWork, header.Bits)
	if err != nil {
		return nil, err
	}

	out := &decodedHeader{
		Hash:              hash.String(),
		Version:           header.Version,
		VersionHex:        fmt.Sprintf("%08x", uint32(header.Version)), //nolint:gosec // display only
		MerkleRoot:        header.HashMerkleRoot.String(),
		Time:              header.Timestamp,
		Nonce:             header.Nonce,
		Bits:              header.Bits.String(),
		PreviousBlockHash: header.HashPrevBlock.String(),
		Target:            target.String(),
		Work:              blockWork.String(),
		ChainWork:         chainWork.String(),
		PowValid:          true,
	}

	if difficulty := header.Bits.CalculateDifficulty(); difficulty != nil {
		out.Difficulty, _ = difficulty.Float64()
	}

	if err = pow.CheckProofOfWork(hash, target); err != nil {
		out.PowValid = false
		out.Error = err.Error()

		var tErr *errors.Error
		if errors.As(err, &tErr) && tErr.Data() != nil {
			out.ErrorData = tErr.Data().EncodeErrorData()
		}
	}

	return out, nil
}
