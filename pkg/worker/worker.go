package worker

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/screa/hash160-miner/internal/crypto"
	"github.com/screa/hash160-miner/internal/logger"
	"github.com/screa/hash160-miner/internal/report"
	"github.com/screa/hash160-miner/pkg/keyspace"
	"github.com/screa/hash160-miner/pkg/types"
)

// Deriver turns a secret key into its public key and digests.
type Deriver interface {
	Derive(key *[32]byte, out *crypto.Derivation) error
}

// Shared is the state every worker of one run points at.
type Shared struct {
	Counter *atomic.Uint64  // rejected batches
	Console *report.Console // stdout protocol
	Logger  *logger.Logger  // diagnostics
	Exit    func(code int)  // terminates the process after a match

	stop     chan struct{}
	stopOnce sync.Once
}

// NewShared builds the shared handle with os.Exit as the exit hook.
func NewShared(console *report.Console, log *logger.Logger) *Shared {
	return &Shared{
		Counter: new(atomic.Uint64),
		Console: console,
		Logger:  log,
		Exit:    os.Exit,
		stop:    make(chan struct{}),
	}
}

// Stop asks every worker to return after its current batch.
func (s *Shared) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Stopped reports whether Stop has been called.
func (s *Shared) Stopped() bool {
	select {
	case <-s.stop:
		return true
	default:
		return false
	}
}

// Worker searches one region of the key space
type Worker struct {
	id      int
	config  *types.WorkerConfig
	shared  *Shared
	deriver Deriver
	gen     *keyspace.Generator

	// Pre-allocated per-candidate output
	derived crypto.Derivation

	batches uint64
	match   *types.MatchResult
}

// NewWorker creates a worker positioned at cursor.
func NewWorker(id int, config *types.WorkerConfig, shared *Shared, deriver Deriver, cursor uint64) *Worker {
	return &Worker{
		id:      id,
		config:  config,
		shared:  shared,
		deriver: deriver,
		gen:     keyspace.NewGenerator(cursor, config.Marker),
	}
}

// Run walks the region until a candidate matches or derivation fails.
// On a match the result is printed and the exit hook is called with 0; Run only
// returns StatusFound if that hook returns, and then the other workers are
// stopped and return StatusStopped.
func (w *Worker) Run() types.Status {
	for {
		batch := w.gen.Batch()
		for i := range batch {
			key := &batch[i]
			if err := w.deriver.Derive((*[32]byte)(key), &w.derived); err != nil {
				w.shared.Logger.Printf("Worker %d: key %s: %v", w.id, key, err)
				return types.StatusError
			}

			if crypto.Matches(&w.derived.RIPEMD160, &w.config.Target) {
				w.found(key)
				return types.StatusFound
			}

			if w.config.Debug {
				w.shared.Console.CheckedKey(key[:], w.derived.PublicKey[:], w.derived.SHA256[:], w.derived.RIPEMD160[:])
			}
		}

		w.batches++
		if w.config.Monitor {
			w.shared.Counter.Add(1)
		}
		w.gen.Advance()

		if w.shared.Stopped() {
			return types.StatusStopped
		}
	}
}

func (w *Worker) found(key *keyspace.SecretKey) {
	w.match = &types.MatchResult{
		Worker:    w.id,
		SecretKey: *key,
		PublicKey: w.derived.PublicKey,
		SHA256:    w.derived.SHA256,
		RIPEMD160: w.derived.RIPEMD160,
		Batches:   w.batches,
	}
	if err := w.shared.Console.Solution(w.match); err != nil {
		w.shared.Logger.Printf("Worker %d: writing solution: %v", w.id, err)
	}
	if addr, err := crypto.Address(w.match.RIPEMD160); err == nil {
		w.shared.Logger.Printf("Worker %d found the key for %s after %d batches", w.id, addr, w.batches)
	}
	w.shared.Exit(0)
	w.shared.Stop()
}

// Match returns the reported match, or nil.
func (w *Worker) Match() *types.MatchResult {
	return w.match
}

// Batches returns how many batches were fully rejected.
func (w *Worker) Batches() uint64 {
	return w.batches
}
