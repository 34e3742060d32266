// Package keyspace holds the secret key representation and the rules for walking
// and partitioning the searched portion of the secp256k1 scalar space.
package keyspace

import (
	"encoding/binary"
	"encoding/hex"
)

const (
	// KeySize is the byte length of a secret key.
	KeySize = 32

	// DiscriminantOffset is the byte that tells the members of a batch apart.
	// It sits directly above the low-order limb.
	DiscriminantOffset = KeySize - 9

	// LimbOffset is where the low-order 64-bit limb starts (bytes 24..31).
	LimbOffset = KeySize - 8

	// BatchSize is the number of candidates derived from one cursor value.
	BatchSize = 4

	// BatchMarker is the fixed high bit of the discriminant byte.
	BatchMarker byte = 1 << 2

	memberMask byte = BatchSize - 1
)

// SecretKey is a 32-byte big-endian scalar.
type SecretKey [KeySize]byte

// NewSecretKey builds a key from a discriminant byte and a low limb value.
func NewSecretKey(discriminant byte, limb uint64) SecretKey {
	var k SecretKey
	k[DiscriminantOffset] = discriminant
	binary.BigEndian.PutUint64(k[LimbOffset:], limb)
	return k
}

// LowLimb reads bytes 24..31 as a big-endian uint64.
func (k *SecretKey) LowLimb() uint64 {
	return binary.BigEndian.Uint64(k[LimbOffset:])
}

// Discriminant returns the batch discriminant byte.
func (k *SecretKey) Discriminant() byte {
	return k[DiscriminantOffset]
}

// SetDiscriminant overwrites the batch discriminant byte.
func (k *SecretKey) SetDiscriminant(b byte) {
	k[DiscriminantOffset] = b
}

// Increment adds one to the low-order limb. A carry out of the limb moves into the
// bytes above the discriminant, so the discriminant never changes while walking.
func (k *SecretKey) Increment() {
	limb := k.LowLimb() + 1
	binary.BigEndian.PutUint64(k[LimbOffset:], limb)
	if limb != 0 {
		return
	}
	for i := DiscriminantOffset - 1; i >= 0; i-- {
		k[i]++
		if k[i] != 0 {
			return
		}
	}
}

// String returns the lowercase hex encoding of the key.
func (k SecretKey) String() string {
	return hex.EncodeToString(k[:])
}
