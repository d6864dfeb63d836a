// Package headerproof verifies a single Bitcoin block header and commits an
// ABI-encoded summary of it.
//
// Verification is a straight line: decode the 80-byte header, expand its
// compact target, check the double SHA-256 hash against the target, derive
// the work the target represents and encode
//
//	(bytes hash, bytes merkleRoot, bytes prevBlockHash, uint256 work)
//
// Any failure aborts the run and nothing is committed. The verifier keeps no
// state between calls.
package headerproof

import (
	"context"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/headerproof/model"
	"github.com/bsv-blockchain/headerproof/pkg/abi"
	"github.com/bsv-blockchain/headerproof/services/headerproof/pow"
	"github.com/bsv-blockchain/headerproof/services/headerproof/work"
	"github.com/bsv-blockchain/headerproof/settings"
	"github.com/bsv-blockchain/headerproof/ulogger"
	"github.com/bsv-blockchain/headerproof/util"
	"github.com/bsv-blockchain/headerproof/util/uint256"
	"github.com/ordishs/gocore"
)

// EnvelopeSize is the length of the committed envelope: four head slots and
// three tail entries of a length slot plus one 32-byte payload slot.
const EnvelopeSize = 4*abi.SlotSize + 3*2*abi.SlotSize

var stats = gocore.NewStat("headerproof")

type Verifier struct {
	logger   ulogger.Logger
	settings *settings.Settings
}

// Result holds the values derived from a header that passed verification.
type Result struct {
	Header *model.BlockHeader
	Hash   chainhash.Hash
	Target uint256.Uint256
	Work   uint256.Uint256
}

func New(logger ulogger.Logger, tSettings *settings.Settings) *Verifier {
	initPrometheusMetrics()

	return &Verifier{
		logger:   logger,
		settings: tSettings,
	}
}

// Verify runs the full pipeline on input and returns the encoded envelope.
// On failure the returned bytes are nil.
func (v *Verifier) Verify(input []byte) ([]byte, error) {
	result, err := v.VerifyHeader(input)
	if err != nil {
		return nil, err
	}

	return result.Envelope()
}

// VerifyHeader decodes and checks the header in the first 80 bytes of input.
// Bytes beyond the first 80 are ignored.
func (v *Verifier) VerifyHeader(input []byte) (result *Result, err error) {
	start, stat, ctx := util.NewStatFromContext(context.Background(), "VerifyHeader", stats, false)
	defer func() {
		stat.AddTime(time.Unix(0, start))
		v.observe(start, len(input), err)
	}()

	header, err := v.decode(ctx, input)
	if err != nil {
		return nil, err
	}

	hash, target, err := v.checkProofOfWork(ctx, header)
	if err != nil {
		return nil, err
	}

	blockWork := work.CalcWork(target)

	v.logger.Infof("[VerifyHeader][%s] proof of work valid, bits %s, work %s", hash.String(), header.Bits.String(), blockWork.String())

	return &Result{
		Header: header,
		Hash:   hash,
		Target: target,
		Work:   blockWork,
	}, nil
}

func (v *Verifier) decode(ctx context.Context, input []byte) (*model.BlockHeader, error) {
	start, stat, _ := util.NewStatFromContext(ctx, "decode", stats)
	defer stat.AddTime(time.Unix(0, start))

	header, err := model.NewBlockHeaderFromBytes(input)
	if err != nil {
		return nil, err
	}

	if len(input) > model.BlockHeaderSize {
		v.logger.Debugf("[decode] ignoring %d trailing bytes", len(input)-model.BlockHeaderSize)
	}

	v.logger.Debugf("[decode] %s", header.String())

	return header, nil
}

func (v *Verifier) checkProofOfWork(ctx context.Context, header *model.BlockHeader) (chainhash.Hash, uint256.Uint256, error) {
	start, stat, _ := util.NewStatFromContext(ctx, "checkProofOfWork", stats)
	defer stat.AddTime(time.Unix(0, start))

	hash, target, err := pow.ValidateHeader(header)
	if err != nil {
		return hash, target, err
	}

	v.logger.Debugf("[checkProofOfWork][%s] target %s", hash.String(), target.String())

	return hash, target, nil
}

func (v *Verifier) observe(start int64, inputSize int, err error) {
	if err != nil {
		v.logger.Warnf("[VerifyHeader] header rejected: %v", err)
	}

	if v.settings != nil && !v.settings.HeaderProof.MetricsEnabled {
		return
	}

	prometheusHeaderProofVerify.WithLabelValues(outcomeOf(err)).Inc()
	prometheusHeaderProofVerifyDuration.Observe(util.TimeSince(start))
	prometheusHeaderProofInputSize.Observe(float64(inputSize))
}

// WorkWords returns the work as four 64-bit words, least significant first.
func (r *Result) WorkWords() [4]uint64 {
	return work.ToWords(r.Work)
}

// Envelope encodes the result as (bytes hash, bytes merkleRoot,
// bytes prevBlockHash, uint256 work). Hashes are committed in internal
// byte order, as they appear in the header.
func (r *Result) Envelope() ([]byte, error) {
	return abi.Encode(
		abi.Bytes(r.Hash[:]),
		abi.Bytes(r.Header.HashMerkleRoot[:]),
		abi.Bytes(r.Header.HashPrevBlock[:]),
		abi.Uint256Words(r.WorkWords()),
	)
}
