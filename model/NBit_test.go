package model

import (
	"math/big"
	"testing"

	"github.com/bsv-blockchain/go-chaincfg"
	"github.com/bsv-blockchain/headerproof/errors"
	"github.com/bsv-blockchain/headerproof/util/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The difficulty for "1e0cbb05" is the pow limit (0x00ffff * 2^208) divided by
// the target (0x0cbb05 * 2^216), roughly 1 / 3259.99, i.e. 0.0003068360688.
func TestNBit(t *testing.T) {
	bits, err := NewNBitFromString("1e0cbb05")
	require.NoError(t, err)
	require.Equal(t, "1e0cbb05", bits.String())
	require.Equal(t, uint32(0x1e0cbb05), bits.Uint32())

	difficulty := bits.CalculateDifficulty()
	require.Equal(t, "0.0003068360688", difficulty.String())

	target, err := bits.Target()
	require.NoError(t, err)
	require.Equal(t, "87862992749702277876753291758735394717545048148536728461472937357082624", target.Big().String())
}

func TestCalculateTarget(t *testing.T) {
	bits, err := NewNBitFromString("180f7f7d") // block #869334
	require.NoError(t, err)

	difficulty, _ := bits.CalculateDifficulty().Float32()
	expectedDifficulty, _ := big.NewFloat(70944300723.85233).Float32()
	require.Equal(t, expectedDifficulty, difficulty)

	target, err := bits.Target()
	require.NoError(t, err)
	require.Equal(t, "380009881215830907712605183958726704270100120947772096512", target.Big().String())
}

func TestNBitByteOrder(t *testing.T) {
	bits := NewNBitFromUint32(0x1809dd97)

	assert.Equal(t, NBit{0x97, 0xdd, 0x09, 0x18}, bits)
	assert.Equal(t, []byte{0x97, 0xdd, 0x09, 0x18}, bits.CloneBytes())
	assert.Equal(t, "1809dd97", bits.String())
	assert.Equal(t, uint(0x18), bits.Exponent())
	assert.Equal(t, uint32(0x09dd97), bits.Mantissa())
	assert.False(t, bits.IsNegative())

	parsed, err := NewNBitFromSlice(bits.CloneBytes())
	require.NoError(t, err)
	assert.Equal(t, bits, *parsed)

	_, err = NewNBitFromSlice([]byte{1, 2, 3})
	assert.True(t, errors.IsMalformedHeaderError(err))

	_, err = NewNBitFromString("1d00ff")
	assert.True(t, errors.IsMalformedHeaderError(err))

	_, err = NewNBitFromString("not hex!")
	assert.True(t, errors.IsMalformedHeaderError(err))
}

func TestNBitTarget(t *testing.T) {
	tests := []struct {
		name    string
		compact uint32
		want    string
	}{
		{"mainnet pow limit", 0x1d00ffff, "0x00000000ffff0000000000000000000000000000000000000000000000000000"},
		{"regtest pow limit", 0x207fffff, "0x7fffff0000000000000000000000000000000000000000000000000000000000"},
		{"exponent 3", 0x03123456, "0x0000000000000000000000000000000000000000000000000000000000123456"},
		{"exponent 2 drops a byte", 0x02123456, "0x0000000000000000000000000000000000000000000000000000000000001234"},
		{"exponent 1 drops two bytes", 0x01123456, "0x0000000000000000000000000000000000000000000000000000000000000012"},
		{"exponent 0", 0x00123456, "0x0000000000000000000000000000000000000000000000000000000000000000"},
		{"zero mantissa", 0x1d000000, "0x0000000000000000000000000000000000000000000000000000000000000000"},
		{"zero mantissa, huge exponent", 0xff000000, "0x0000000000000000000000000000000000000000000000000000000000000000"},
		{"widest exponent", 0x2100ffff, "0xffff000000000000000000000000000000000000000000000000000000000000"},
		{"one byte mantissa at exponent 34", 0x22000001, "0x0100000000000000000000000000000000000000000000000000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := NewNBitFromUint32(tt.compact).Target()
			require.NoError(t, err)
			assert.Equal(t, tt.want, target.String())
		})
	}
}

func TestNBitTargetMalformed(t *testing.T) {
	tests := []struct {
		name    string
		compact uint32
	}{
		{"sign bit", 0x1d80ffff},
		{"sign bit with zero mantissa", 0x1d800000},
		{"sign bit small exponent", 0x01800000},
		{"overflow by one bit", 0x21010000},
		{"overflow exponent 34", 0x22000100},
		{"overflow exponent 35", 0x23000001},
		{"max exponent", 0xff7fffff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := NewNBitFromUint32(tt.compact).Target()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrMalformedHeader))
			assert.Equal(t, uint256.Zero, target)
			assert.Nil(t, NewNBitFromUint32(tt.compact).CalculateDifficulty())
		})
	}
}

func TestNBitTargetMonotonic(t *testing.T) {
	// for a fixed exponent a larger mantissa never yields a smaller target
	for _, exponent := range []uint32{0x03, 0x17, 0x1d, 0x20} {
		prev := uint256.Zero

		for _, mantissa := range []uint32{0x000001, 0x0000ff, 0x00ffff, 0x0fffff, 0x7fffff} {
			target, err := NewNBitFromUint32(exponent<<24 | mantissa).Target()
			require.NoError(t, err)
			require.GreaterOrEqual(t, target.Cmp(prev), 0)

			prev = target
		}
	}
}

func TestNBitChainParams(t *testing.T) {
	for _, network := range []string{"mainnet", "testnet", "regtest"} {
		t.Run(network, func(t *testing.T) {
			params, err := chaincfg.GetChainParams(network)
			require.NoError(t, err)

			target, err := NewNBitFromUint32(params.PowLimitBits).Target()
			require.NoError(t, err)

			// the compact form truncates the limit, never rounds it up
			assert.LessOrEqual(t, target.Big().Cmp(params.PowLimit), 0)
		})
	}
}

func TestCalculateDifficultyAtPowLimit(t *testing.T) {
	difficulty := NewNBitFromUint32(0x1d00ffff).CalculateDifficulty()
	require.NotNil(t, difficulty)

	f, _ := difficulty.Float64()
	assert.InDelta(t, 1.0, f, 1e-12)

	assert.Nil(t, NewNBitFromUint32(0x1d000000).CalculateDifficulty())
}
