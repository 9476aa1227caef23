package plink

// Decode retrieves the two-bit code for the given major (e.g., marker index if
// the data are in SNP-major order) and minor (e.g., sample index) matrix entry.
func Decode(blob []byte, recordSize, major, minor int) byte {
	return (blob[major*recordSize+minor/4] >> (2 * uint(minor%4))) & 3
}

// Encode replaces the two-bit code of one matrix entry, leaving the other
// three codes that share its byte untouched.
func Encode(blob []byte, recordSize, major, minor int, code byte) error {
	if code > 3 {
		return ErrInvalidCode
	}

	i := major*recordSize + minor/4
	shift := 2 * uint(minor%4)
	blob[i] = (blob[i] &^ (3 << shift)) | (code << shift)

	return nil
}
