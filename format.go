/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
)

var sizeUnits = [...]string{"EiB", "PiB", "TiB", "GiB", "MiB", "KiB", "B"}

const exbibyte uint64 = 1 << 60

func formatSize(bytes uint64) string {
	multiplier := exbibyte

	for _, unit := range sizeUnits {
		if bytes >= multiplier {
			if bytes%multiplier == 0 {
				return fmt.Sprintf("%d %s", bytes/multiplier, unit)
			}

			return fmt.Sprintf("%.1f %s", float64(bytes)/float64(multiplier), unit)
		}

		multiplier /= 1024
	}

	return "0"
}
