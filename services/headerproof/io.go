package headerproof

import (
	"io"

	"github.com/bsv-blockchain/headerproof/errors"
	"github.com/bsv-blockchain/headerproof/settings"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ReadInput reads at most limit bytes from r. Input longer than limit is
// truncated rather than rejected; only the first 80 bytes are decoded.
func ReadInput(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return nil, errors.NewInvalidArgumentError("input limit must be positive, got %d", limit)
	}

	input, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		readErr := errors.New(errors.ERR_PROCESSING, "failed to read header input", err)
		readErr.SetData("read", len(input))
		readErr.SetData("limit", limit)

		return nil, readErr
	}

	return input, nil
}

// Commit writes the envelope to w in a single write.
func Commit(w io.Writer, envelope []byte) error {
	n, err := w.Write(envelope)
	if err != nil {
		return errors.NewProcessingError("failed to commit envelope", err)
	}

	if n != len(envelope) {
		writeErr := errors.New(errors.ERR_PROCESSING, "short write committing envelope")
		writeErr.SetData("written", n)
		writeErr.SetData("size", len(envelope))

		return writeErr
	}

	return nil
}

// FormatEnvelope renders the envelope for output. The hex format is a
// 0x-prefixed string followed by a newline.
func FormatEnvelope(envelope []byte, format string) ([]byte, error) {
	switch format {
	case settings.OutputFormatRaw, "":
		return envelope, nil
	case settings.OutputFormatHex:
		return []byte(hexutil.Encode(envelope) + "\n"), nil
	default:
		return nil, errors.NewInvalidArgumentError("unknown output format %q", format)
	}
}

// Run reads the header from r, verifies it and commits the envelope to w.
// Nothing is written to w unless verification succeeds.
func (v *Verifier) Run(r io.Reader, w io.Writer) error {
	limit := int64(settings.HeaderSize)
	format := settings.OutputFormatRaw

	if v.settings != nil {
		limit = v.settings.HeaderProof.MaxInputBytes
		format = v.settings.HeaderProof.OutputFormat
	}

	input, err := ReadInput(r, limit)
	if err != nil {
		return err
	}

	envelope, err := v.Verify(input)
	if err != nil {
		return err
	}

	out, err := FormatEnvelope(envelope, format)
	if err != nil {
		return err
	}

	return Commit(w, out)
}
