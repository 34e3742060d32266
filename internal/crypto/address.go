package crypto

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// TargetAddress is the P2PKH address whose key is being searched for.
const TargetAddress = "1BY8GQbnueYofwSuFAT3USAhGjPrkxDdW9"

// Target is the HASH160 carried by TargetAddress (base58 payload without the
// version byte and checksum).
var Target = Digest{
	0x73, 0x94, 0x37, 0xbb, 0x3d, 0xd6, 0xd1, 0x98, 0x3e, 0x66,
	0x62, 0x9c, 0x5f, 0x08, 0xc7, 0x0e, 0x52, 0x76, 0x93, 0x71,
}

// Matches compares a digest against the target.
func Matches(d, target *Digest) bool {
	return *d == *target
}

// Address encodes a HASH160 as a mainnet P2PKH address.
func Address(d Digest) (string, error) {
	addr, err := btcutil.NewAddressPubKeyHash(d[:], &chaincfg.MainNetParams)
	if err != nil {
		return "", fmt.Errorf("encode address: %w", err)
	}
	return addr.EncodeAddress(), nil
}

// DecodeAddress extracts the HASH160 from a mainnet P2PKH address.
func DecodeAddress(s string) (Digest, error) {
	var d Digest
	addr, err := btcutil.DecodeAddress(strings.TrimSpace(s), &chaincfg.MainNetParams)
	if err != nil {
		return d, fmt.Errorf("decode address %q: %w", s, err)
	}
	pkh, ok := addr.(*btcutil.AddressPubKeyHash)
	if !ok || !addr.IsForNet(&chaincfg.MainNetParams) {
		return d, fmt.Errorf("decode address %q: not a mainnet pay-to-pubkey-hash address", s)
	}
	copy(d[:], pkh.ScriptAddress())
	return d, nil
}

// ParseDigest decodes a 40-character hex string into a digest.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	h := strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if len(h) != 2*Hash160Size {
		return d, fmt.Errorf("invalid digest length: got %d hex chars, want %d", len(h), 2*Hash160Size)
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return d, fmt.Errorf("invalid digest hex: %w", err)
	}
	copy(d[:], b)
	return d, nil
}

// String returns the lowercase hex encoding of d.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}
