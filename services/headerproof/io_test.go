package headerproof

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/bsv-blockchain/headerproof/errors"
	"github.com/bsv-blockchain/headerproof/settings"
	"github.com/bsv-blockchain/headerproof/ulogger"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read(_ []byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

type shortWriter struct {
	n int
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) < w.n {
		return len(p), nil
	}

	return w.n, nil
}

type countingWriter struct {
	bytes.Buffer
	writes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.Buffer.Write(p)
}

func TestReadInput(t *testing.T) {
	t.Run("reads up to the limit", func(t *testing.T) {
		input, err := ReadInput(strings.NewReader(strings.Repeat("a", 200)), 100)
		require.NoError(t, err)
		assert.Len(t, input, 100)
	})

	t.Run("short input is returned as is", func(t *testing.T) {
		input, err := ReadInput(strings.NewReader("abc"), 100)
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), input)
	})

	t.Run("read error", func(t *testing.T) {
		_, err := ReadInput(failingReader{}, 100)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrProcessing))
		assert.False(t, errors.IsRejection(err))

		var tErr *errors.Error
		require.True(t, errors.As(err, &tErr))
		assert.Equal(t, int64(100), tErr.GetData("limit"))
		assert.Equal(t, 0, tErr.GetData("read"))
	})

	t.Run("non-positive limit", func(t *testing.T) {
		_, err := ReadInput(strings.NewReader("abc"), 0)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
	})
}

func TestCommit(t *testing.T) {
	w := &countingWriter{}
	require.NoError(t, Commit(w, []byte{1, 2, 3}))
	assert.Equal(t, 1, w.writes)
	assert.Equal(t, []byte{1, 2, 3}, w.Bytes())

	err := Commit(&shortWriter{n: 2}, []byte{1, 2, 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrProcessing))

	var tErr *errors.Error
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, 2, tErr.GetData("written"))
	assert.Equal(t, 3, tErr.GetData("size"))
	assert.Contains(t, err.Error(), "written:2")
}

func TestFormatEnvelope(t *testing.T) {
	out, err := FormatEnvelope([]byte{0xde, 0xad}, settings.OutputFormatRaw)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad}, out)

	out, err = FormatEnvelope([]byte{0xde, 0xad}, settings.OutputFormatHex)
	require.NoError(t, err)
	assert.Equal(t, "0xdead\n", string(out))

	_, err = FormatEnvelope([]byte{0xde, 0xad}, "base64")
	require.Error(t, err)
}

func TestRun(t *testing.T) {
	t.Run("raw", func(t *testing.T) {
		v := newTestVerifier(t)
		input := mustDecodeHex(t, genesisHeader)

		var out countingWriter

		require.NoError(t, v.Run(bytes.NewReader(input), &out))
		assert.Equal(t, 1, out.writes)
		assert.Len(t, out.Bytes(), EnvelopeSize)

		want, err := v.Verify(input)
		require.NoError(t, err)
		assert.Equal(t, want, out.Bytes())
	})

	t.Run("hex", func(t *testing.T) {
		v := newTestVerifier(t)
		v.settings.HeaderProof.OutputFormat = settings.OutputFormatHex

		var out bytes.Buffer

		require.NoError(t, v.Run(bytes.NewReader(mustDecodeHex(t, genesisHeader)), &out))

		decoded, err := hexutil.Decode(strings.TrimSpace(out.String()))
		require.NoError(t, err)
		assert.Len(t, decoded, EnvelopeSize)
	})

	t.Run("nothing written on failure", func(t *testing.T) {
		v := newTestVerifier(t)

		input := mustDecodeHex(t, genesisHeader)
		input[79] ^= 0x10

		var out countingWriter

		err := v.Run(bytes.NewReader(input), &out)
		require.Error(t, err)
		assert.True(t, errors.IsProofOfWorkError(err))
		assert.Equal(t, 0, out.writes)
		assert.Equal(t, 0, out.Len())
	})

	t.Run("input beyond the limit is ignored", func(t *testing.T) {
		v := newTestVerifier(t)
		v.settings.HeaderProof.MaxInputBytes = settings.HeaderSize

		input := append(mustDecodeHex(t, genesisHeader), bytes.Repeat([]byte{0x01}, 1000)...)

		var out bytes.Buffer

		require.NoError(t, v.Run(bytes.NewReader(input), &out))
		assert.Len(t, out.Bytes(), EnvelopeSize)
	})

	t.Run("without settings", func(t *testing.T) {
		v := New(ulogger.TestLogger{}, nil)

		var out bytes.Buffer

		require.NoError(t, v.Run(bytes.NewReader(mustDecodeHex(t, genesisHeader)), &out))
		assert.Len(t, out.Bytes(), EnvelopeSize)
	})
}
