package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLamportsToSOL(t *testing.T) {
	assert.Equal(t, "0.024981836", LamportsToSOL(24981836))
	assert.Equal(t, "0.000000000", LamportsToSOL(0))
	assert.Equal(t, "2.500000000", LamportsToSOL(2_500_000_000))
}

func TestDisplaySOL(t *testing.T) {
	assert.Equal(t, "0.01", DisplaySOL(10_000_000))
	assert.Equal(t, "1.5", DisplaySOL(1_500_000_000))
	assert.Equal(t, "3", DisplaySOL(3*LamportsPerSOL))
	assert.Equal(t, "0", DisplaySOL(0))
}

func TestSOLToLamports(t *testing.T) {
	n, err := SOLToLamports("0.02")
	require.NoError(t, err)
	assert.Equal(t, uint64(20_000_000), n)

	n, err = SOLToLamports("3")
	require.NoError(t, err)
	assert.Equal(t, uint64(3*LamportsPerSOL), n)

	n, err = SOLToLamports(".5")
	require.NoError(t, err)
	assert.Equal(t, uint64(500_000_000), n)

	_, err = SOLToLamports("1.2.3")
	require.Error(t, err)

	_, err = SOLToLamports(" ")
	require.Error(t, err)
}
