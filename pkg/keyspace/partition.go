package keyspace

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Origin is the first cursor value of the partitioned range.
const Origin uint64 = 1

// Stride returns the width of each worker's share of the 64-bit cursor range.
func Stride(workers int) uint64 {
	if workers <= 0 {
		return 0
	}
	return math.MaxUint64 / uint64(workers)
}

// Partition returns the base offset of every worker: Origin + i*stride.
func Partition(workers int) []uint64 {
	stride := Stride(workers)
	bases := make([]uint64, workers)
	for i := range bases {
		bases[i] = Origin + uint64(i)*stride
	}
	return bases
}

// ShortReadError reports that the randomness source delivered fewer bytes than
// a full 64-bit offset.
type ShortReadError struct {
	Got int
	Err error
}

func (e *ShortReadError) Error() string {
	return fmt.Sprintf("random offset: got %d of 8 bytes: %v", e.Got, e.Err)
}

func (e *ShortReadError) Unwrap() error {
	return e.Err
}

// RandomOffset reads a 64-bit offset from r. On a short read it still returns the
// value assembled from the bytes obtained, together with a *ShortReadError.
func RandomOffset(r io.Reader) (uint64, error) {
	var buf [8]byte
	n, err := io.ReadFull(r, buf[:])
	off := binary.LittleEndian.Uint64(buf[:])
	if err != nil {
		return off, &ShortReadError{Got: n, Err: err}
	}
	return off, nil
}

// StartCursor is the randomized starting point of base. The addition wraps.
func StartCursor(base, offset uint64) uint64 {
	return base + offset
}
