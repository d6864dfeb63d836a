package work

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/headerproof/errors"
	"github.com/bsv-blockchain/headerproof/model"
	"github.com/bsv-blockchain/headerproof/util/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcBlockWork(t *testing.T) {
	tests := []struct {
		name         string
		bits         uint32
		expectedWork string
	}{
		{
			name:         "Genesis block difficulty",
			bits:         0x1d00ffff,
			expectedWork: "0x0000000000000000000000000000000000000000000000000000000100010001",
		},
		{
			name:         "Mainnet typical difficulty",
			bits:         0x1a05db8b,
			expectedWork: "0x000000000000000000000000000000000000000000000000002bb43836381c9c",
		},
		{
			name:         "High difficulty",
			bits:         0x17053894,
			expectedWork: "0x0000000000000000000000000000000000000000000031085d594cb7e26e94b5",
		},
		{
			name:         "BSV mainnet block 869334",
			bits:         0x180f7f7d,
			expectedWork: "0x00000000000000000000000000000000000000000000001084aca3607d9298e7",
		},
		{
			name:         "BSV regtest difficulty",
			bits:         0x207fffff,
			expectedWork: "0x0000000000000000000000000000000000000000000000000000000000000002",
		},
		{
			name:         "Target of one",
			bits:         0x03000001,
			expectedWork: "0x8000000000000000000000000000000000000000000000000000000000000000",
		},
		{
			name:         "Zero target saturates",
			bits:         0x00000000,
			expectedWork: "0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			work, err := CalcBlockWork(model.NewNBitFromUint32(tt.bits))
			require.NoError(t, err)

			assert.Equal(t, tt.expectedWork, work.String())
		})
	}
}

func TestCalcBlockWork_InvalidBits(t *testing.T) {
	for _, bits := range []uint32{0x01800000, 0x1d80ffff, 0x23000001} {
		_, err := CalcBlockWork(model.NewNBitFromUint32(bits))
		require.Error(t, err)
		assert.True(t, errors.IsMalformedHeaderError(err), "bits %08x", bits)
	}
}

func TestCalcWork_Formula(t *testing.T) {
	two256 := new(big.Int).Lsh(big.NewInt(1), 256)

	targets := []uint256.Uint256{
		uint256.One,
		uint256.FromUint64(2),
		uint256.FromUint64(0xffff).Lsh(208),
		uint256.FromUint64(0x7fffff).Lsh(232),
		uint256.Max.Rsh(1),
		uint256.Max.Sub(uint256.One),
		{0x0123456789abcdef, 0xfedcba9876543210, 0x1, 0},
		{0, 0, 0, 1},
	}

	for _, target := range targets {
		want := new(big.Int).Div(two256, new(big.Int).Add(target.Big(), big.NewInt(1)))
		got := CalcWork(target)

		require.Equal(t, want.String(), got.Big().String(), "target %s", target)
	}
}

func TestCalcWork_RandomTargets(t *testing.T) {
	rnd := rand.New(rand.NewSource(7)) //nolint:gosec // deterministic test data
	two256 := new(big.Int).Lsh(big.NewInt(1), 256)

	for i := 0; i < 2000; i++ {
		target := uint256.Uint256{rnd.Uint64(), rnd.Uint64(), rnd.Uint64(), rnd.Uint64()}.Rsh(uint(rnd.Intn(256)))
		if target.IsZero() {
			continue
		}

		want := new(big.Int).Div(two256, new(big.Int).Add(target.Big(), big.NewInt(1)))
		require.Equal(t, want.String(), CalcWork(target).Big().String(), "target %s", target)
	}
}

func TestCalcWork_Extremes(t *testing.T) {
	assert.Equal(t, uint256.One, CalcWork(uint256.Max))
	assert.Equal(t, uint256.Max, CalcWork(uint256.Zero))

	// 2^256 / (2^256 - 1) truncates to 1 as well
	assert.Equal(t, uint256.One, CalcWork(uint256.Max.Sub(uint256.One)))
}

func TestCalcWork_Monotonic(t *testing.T) {
	prev := uint256.Max

	for shift := uint(0); shift <= 240; shift += 3 {
		target := uint256.FromUint64(0xffff).Lsh(shift)
		work := CalcWork(target)

		require.LessOrEqual(t, work.Cmp(prev), 0, "target %s", target)

		prev = work
	}
}

func TestWords(t *testing.T) {
	work, err := CalcBlockWork(model.NewNBitFromUint32(0x1d00ffff))
	require.NoError(t, err)

	words := ToWords(work)
	assert.Equal(t, [4]uint64{0x100010001, 0, 0, 0}, words)
	assert.Equal(t, work, FromWords(words))

	assert.Equal(t, [4]uint64{0, 0, 0, 1 << 63}, ToWords(CalcWork(uint256.One)))
}

func TestCalculateChainWork(t *testing.T) {
	tests := []struct {
		name         string
		prevWork     string
		nBits        string
		expectedWork string
	}{
		{
			name:         "Genesis block",
			prevWork:     "0000000000000000000000000000000000000000000000000000000000000000",
			nBits:        "1d00ffff",
			expectedWork: "0000000000000000000000000000000000000000000000000000000100010001",
		},
		{
			name:         "Second block",
			prevWork:     "0000000000000000000000000000000000000000000000000000000100010001",
			nBits:        "1d00ffff",
			expectedWork: "0000000000000000000000000000000000000000000000000000000200020002",
		},
		{
			name:         "Regtest block",
			prevWork:     "0000000000000000000000000000000000000000000000000000000000010cf0",
			nBits:        "207fffff",
			expectedWork: "0000000000000000000000000000000000000000000000000000000000010cf2",
		},
		{
			name:         "Saturates at the maximum",
			prevWork:     "fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe",
			nBits:        "207fffff",
			expectedWork: "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prevWork, err := chainhash.NewHashFromStr(tt.prevWork)
			require.NoError(t, err)

			nBit, err := model.NewNBitFromString(tt.nBits)
			require.NoError(t, err)

			newWork, err := CalculateChainWork(prevWork, *nBit)
			require.NoError(t, err)
			require.NotNil(t, newWork)

			assert.Equal(t, tt.expectedWork, newWork.String())
		})
	}
}

func TestCalculateChainWork_Accumulation(t *testing.T) {
	prevWork := chainhash.Hash{}
	nBit, err := model.NewNBitFromString("1d00ffff")
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		newWork, err := CalculateChainWork(&prevWork, *nBit)
		require.NoError(t, err, "Block %d: CalculateChainWork failed", i)

		assert.Equal(t, 1, uint256.FromLittleEndian(*newWork).Cmp(uint256.FromLittleEndian(prevWork)),
			"Block %d: new work should be greater than previous work", i)

		prevWork = *newWork
	}

	assert.Equal(t, uint256.FromUint64(10*0x100010001), uint256.FromLittleEndian(prevWork))
}

func TestCalculateChainWork_InvalidBits(t *testing.T) {
	newWork, err := CalculateChainWork(&chainhash.Hash{}, model.NewNBitFromUint32(0x01800000))
	require.Error(t, err)
	assert.Nil(t, newWork)
	assert.True(t, errors.IsMalformedHeaderError(err))
}

func BenchmarkCalcBlockWork(b *testing.B) {
	bits := model.NewNBitFromUint32(0x1d00ffff)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = CalcBlockWork(bits)
	}
}

func BenchmarkCalculateChainWork(b *testing.B) {
	prevWork := chainhash.Hash{}
	nBit, _ := model.NewNBitFromString("1d00ffff")
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = CalculateChainWork(&prevWork, *nBit)
	}
}
