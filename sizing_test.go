/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"math"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog2Helpers(t *testing.T) {
	cases := []struct {
		in       uint64
		min, max uint
	}{
		{0, 0, 0},
		{1, 0, 0},
		{2, 1, 1},
		{3, 1, 2},
		{4, 2, 2},
		{5, 2, 3},
		{500000, 18, 19},
		{1 << 63, 63, 63},
		{math.MaxUint64, 63, 64},
	}

	for _, c := range cases {
		assert.Equal(t, c.min, minLog2(c.in), "minLog2(%d)", c.in)
		assert.Equal(t, c.max, maxLog2(c.in), "maxLog2(%d)", c.in)
	}
}

func TestBucketCount(t *testing.T) {
	cases := map[uint64]uint64{
		0:       2,
		1:       2,
		2:       2,
		3:       2,
		4:       4,
		5:       4,
		6:       8,
		1000:    1024,
		1000000: 1 << 20,
	}

	for entries, want := range cases {
		assert.Equal(t, want, bucketCount(entries), "bucketCount(%d)", entries)
	}
}

func TestBucketCountProperties(t *testing.T) {
	prev := bucketCount(0)

	for n := uint64(2); n < 1<<14; n++ {
		b := bucketCount(n)

		require.Equal(t, 1, bits.OnesCount64(b), "bucketCount(%d) = %d is not a power of two", n, b)
		require.Greater(t, b, n>>1, "bucketCount(%d) too small", n)
		require.GreaterOrEqual(t, b, prev, "bucketCount(%d) decreased", n)

		prev = b
	}
}

func TestMemoryBytes(t *testing.T) {
	assert.Equal(t, uint64(744), memoryBytes(1, bihashRecordSize))
	assert.Equal(t, uint64(780140544), memoryBytes(1<<20, bihashRecordSize))
	assert.Equal(t, uint64(8), memoryBytes(1, 0))

	for b := uint64(1); b < 64; b++ {
		for r := uint64(1); r < 64; r++ {
			assert.Less(t, memoryBytes(b, r), memoryBytes(b+1, r))
			assert.Less(t, memoryBytes(b, r), memoryBytes(b, r+1))
		}
	}
}

func TestEstimate(t *testing.T) {
	est, err := estimate(1000000)
	require.NoError(t, err)

	assert.Equal(t, Estimate{
		Entries: 1000000,
		Buckets: 1048576,
		Bytes:   780140544,
		Size:    "744 MiB",
	}, est)
	assert.Equal(t, "sessions: 1000000\nexpected memory size: 744 MiB\n", est.String())
}

func TestEstimateDegenerate(t *testing.T) {
	for _, n := range []uint64{0, 1} {
		est, err := estimate(n)
		require.NoError(t, err)

		assert.Equal(t, uint64(2), est.Buckets)
		assert.Equal(t, uint64(1488), est.Bytes)
		assert.Equal(t, "1.5 KiB", est.Size)
	}
}

func TestEstimateOverflow(t *testing.T) {
	est, err := estimate(1<<54 | 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1)<<54, est.Buckets)

	for _, n := range []uint64{1<<54 + 2, 1 << 62, math.MaxUint64} {
		_, err := estimate(n)
		assert.ErrorIs(t, err, ErrOverflow, "estimate(%d)", n)
	}
}
