package acpi

// Sum is the wrapping byte sum of b. A well formed table sums to zero.
func Sum(b []byte) byte {
	var sum uint8
	for _, v := range b {
		sum += v
	}
	return sum
}

// Checksum returns the byte that makes the wrapping sum of b plus itself zero.
// The caller zeroes the checksum slot in b before calling.
func Checksum(b []byte) byte {
	return 0 - Sum(b)
}
