package types

import (
	"github.com/screa/hash160-miner/internal/crypto"
	"github.com/screa/hash160-miner/pkg/keyspace"
)

// Status is the terminal state a worker hands back to the coordinator
type Status int

const (
	// StatusExhausted means the worker stopped without error or match.
	StatusExhausted Status = 0
	// StatusError means key derivation rejected a candidate.
	StatusError Status = 1
	// StatusFound means the worker reported a match and the exit hook returned.
	StatusFound Status = 2
	// StatusStopped means another worker found the key first.
	StatusStopped Status = 3
)

func (s Status) String() string {
	switch s {
	case StatusExhausted:
		return "exhausted"
	case StatusError:
		return "error"
	case StatusFound:
		return "found"
	case StatusStopped:
		return "stopped"
	}
	return "unknown"
}

// MatchResult is the winning key and everything derived from it
type MatchResult struct {
	Worker    int
	SecretKey keyspace.SecretKey
	PublicKey [crypto.PublicKeySize]byte
	SHA256    [crypto.SHA256Size]byte
	RIPEMD160 crypto.Digest
	Batches   uint64 // batches the worker rejected before the match
}

// WorkerConfig contains configuration for individual workers
type WorkerConfig struct {
	Target  crypto.Digest
	Marker  byte // fixed high bits of every batch discriminant
	Debug   bool // print every rejected key
	Monitor bool // count rejected batches
}
