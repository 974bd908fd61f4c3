/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSize(t *testing.T) {
	const (
		kib uint64 = 1 << 10
		mib uint64 = 1 << 20
		eib uint64 = 1 << 60
	)

	cases := []struct {
		in   uint64
		want string
	}{
		{0, "0"},
		{1, "1 B"},
		{1023, "1023 B"},
		{kib, "1 KiB"},
		{1536, "1.5 KiB"},
		{mib * 3, "3 MiB"},
		{mib * 744, "744 MiB"},
		{1 << 40, "1 TiB"},
		{eib, "1 EiB"},
		{eib - 1, "1024.0 PiB"},
		{eib * 15, "15 EiB"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, formatSize(c.in), "formatSize(%d)", c.in)
	}
}

func TestFormatSizeRoundTrip(t *testing.T) {
	multipliers := map[string]uint64{
		"B":   1,
		"KiB": 1 << 10,
		"MiB": 1 << 20,
		"GiB": 1 << 30,
		"TiB": 1 << 40,
		"PiB": 1 << 50,
		"EiB": 1 << 60,
	}

	inputs := []uint64{1, 7, 1000, 1025, 1536, 999999, 780140544, 1<<33 + 12345, 1<<52 - 3, 1<<63 + 1<<59}

	for _, in := range inputs {
		out := formatSize(in)

		magnitude, unit, ok := strings.Cut(out, " ")
		require.True(t, ok, "no unit in %q", out)

		m, ok := multipliers[unit]
		require.True(t, ok, "unknown unit in %q", out)

		if in%m == 0 {
			n, err := strconv.ParseUint(magnitude, 10, 64)
			require.NoError(t, err)
			assert.Equal(t, in, n*m, "%q", out)

			continue
		}

		require.Contains(t, magnitude, ".", "%q", out)

		f, err := strconv.ParseFloat(magnitude, 64)
		require.NoError(t, err)
		assert.InDelta(t, float64(in)/float64(m), f, 0.05+1e-9, "%q", out)
	}
}
