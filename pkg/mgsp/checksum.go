// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 OpenParadox Project

package mgsp

// Checksum computes the Paradox frame checksum: the sum of all bytes taken
// modulo 256. For a full frame pass the first 36 bytes.
func Checksum(data []byte) byte {
	var sum uint32
	for _, b := range data {
		sum += uint32(b)
	}
	return byte(sum % 256)
}
