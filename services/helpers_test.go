package services

import (
	"bytes"
	"math"
)

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

// floatClose reports whether two floats are equal within a small tolerance.
func floatClose(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
