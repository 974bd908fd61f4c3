/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

func parseEntries(s string) (uint64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidEntries, s)
	}

	return n, nil
}

func printEstimate(w io.Writer, cfg *Config, arg string) error {
	entries, err := parseEntries(arg)
	if err != nil {
		return err
	}

	est, err := estimate(entries)
	if err != nil {
		return err
	}

	logf(cfg, "ESTIMATE: %d sessions -> %d buckets -> %d bytes", est.Entries, est.Buckets, est.Bytes)

	_, err = io.WriteString(w, est.String())

	return err
}
