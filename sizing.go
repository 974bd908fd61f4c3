/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"math/bits"
)

const (
	// size of one 16_8 bihash key/value record
	bihashRecordSize uint64 = 184

	bucketOverhead uint64 = 8
	bucketFanout   uint64 = 4
)

var ErrOverflow = errors.New("estimate does not fit in 64 bits")

type Estimate struct {
	Entries uint64 `json:"sessions"`
	Buckets uint64 `json:"buckets"`
	Bytes   uint64 `json:"bytes"`
	Size    string `json:"size"`
}

// minLog2 returns floor(log2(x)), with minLog2(0) == 0.
func minLog2(x uint64) uint {
	if x == 0 {
		return 0
	}

	return uint(bits.Len64(x) - 1)
}

func maxLog2(x uint64) uint {
	l := minLog2(x)
	if x > uint64(1)<<l {
		l++
	}

	return l
}

// bucketCount sizes a power-of-two table to stay at most half full.
// Counts of 0 and 1 share the minimum table of 2 buckets.
func bucketCount(entries uint64) uint64 {
	return uint64(1) << (maxLog2(entries>>1) + 1)
}

func memoryBytes(buckets, recordSize uint64) uint64 {
	return buckets * (bucketOverhead + recordSize*bucketFanout)
}

func estimate(entries uint64) (Estimate, error) {
	if maxLog2(entries>>1)+1 >= 64 {
		return Estimate{}, fmt.Errorf("%w: %d sessions", ErrOverflow, entries)
	}

	buckets := bucketCount(entries)

	hi, _ := bits.Mul64(buckets, bucketOverhead+bihashRecordSize*bucketFanout)
	if hi != 0 {
		return Estimate{}, fmt.Errorf("%w: %d sessions", ErrOverflow, entries)
	}

	total := memoryBytes(buckets, bihashRecordSize)

	return Estimate{
		Entries: entries,
		Buckets: buckets,
		Bytes:   total,
		Size:    formatSize(total),
	}, nil
}

func (e Estimate) String() string {
	return fmt.Sprintf("sessions: %d\nexpected memory size: %s\n", e.Entries, e.Size)
}
