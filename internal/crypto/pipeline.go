package crypto

import (
	"crypto/sha256"
	"errors"
	"hash"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/ripemd160"
)

const (
	// PublicKeySize is the length of a compressed secp256k1 public key.
	PublicKeySize = 33
	// SHA256Size is the length of the first digest.
	SHA256Size = sha256.Size
	// Hash160Size is the length of the final RIPEMD-160 digest.
	Hash160Size = ripemd160.Size
)

// ErrInvalidKey is returned for a scalar that is zero or not below the curve order.
var ErrInvalidKey = errors.New("secret key out of range")

// Digest is a 20-byte HASH160 value.
type Digest [Hash160Size]byte

// Derivation holds every value produced for one secret key.
type Derivation struct {
	PublicKey [PublicKeySize]byte
	SHA256    [SHA256Size]byte
	RIPEMD160 Digest
}

// Pipeline derives public keys and their HASH160 digests.
// It keeps reusable hashers, so each goroutine needs its own Pipeline.
type Pipeline struct {
	sha    hash.Hash
	rmd    hash.Hash
	scalar secp256k1.ModNScalar
	point  secp256k1.JacobianPoint
}

// NewPipeline creates a pipeline with fresh hash state.
func NewPipeline() *Pipeline {
	return &Pipeline{
		sha: sha256.New(),
		rmd: ripemd160.New(),
	}
}

// Derive computes the compressed public key of key and the chained digests into
// out. It returns ErrInvalidKey when key is zero or >= the curve order, in which
// case out is left untouched.
func (p *Pipeline) Derive(key *[32]byte, out *Derivation) error {
	if overflow := p.scalar.SetBytes(key); overflow != 0 || p.scalar.IsZero() {
		return ErrInvalidKey
	}
	secp256k1.ScalarBaseMultNonConst(&p.scalar, &p.point)
	p.point.ToAffine()

	// compressed SEC1 encoding: parity prefix followed by X
	out.PublicKey[0] = secp256k1.PubKeyFormatCompressedEven
	if p.point.Y.IsOdd() {
		out.PublicKey[0] = secp256k1.PubKeyFormatCompressedOdd
	}
	p.point.X.PutBytesUnchecked(out.PublicKey[1:])

	p.sha.Reset()
	p.sha.Write(out.PublicKey[:])
	p.sha.Sum(out.SHA256[:0])

	p.rmd.Reset()
	p.rmd.Write(out.SHA256[:])
	p.rmd.Sum(out.RIPEMD160[:0])
	return nil
}

// Hash160 returns RIPEMD160(SHA256(data)).
func Hash160(data []byte) Digest {
	first := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(first[:])
	var d Digest
	h.Sum(d[:0])
	return d
}
