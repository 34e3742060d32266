package miner

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/screa/hash160-miner/internal/config"
	"github.com/screa/hash160-miner/internal/crypto"
	"github.com/screa/hash160-miner/internal/logger"
	"github.com/screa/hash160-miner/internal/report"
	"github.com/screa/hash160-miner/pkg/keyspace"
	"github.com/screa/hash160-miner/pkg/types"
	"github.com/screa/hash160-miner/pkg/worker"
)

// ErrNoMatch is returned when every worker stopped without finding the key.
var ErrNoMatch = errors.New("no match found")

// Miner coordinates the search workers
type Miner struct {
	config       *config.Config
	logger       *logger.Logger
	shared       *worker.Shared
	random       io.Reader
	newDeriver   func() worker.Deriver
	workerConfig *types.WorkerConfig
	done         chan struct{}
	once         sync.Once
	wg           sync.WaitGroup
}

// NewMiner creates a new miner instance
func NewMiner(cfg *config.Config, log *logger.Logger, console *report.Console) *Miner {
	return &Miner{
		config:     cfg,
		logger:     log,
		shared:     worker.NewShared(console, log),
		random:     rand.Reader,
		newDeriver: func() worker.Deriver { return crypto.NewPipeline() },
		workerConfig: &types.WorkerConfig{
			Target:  cfg.Target,
			Marker:  cfg.Marker,
			Debug:   cfg.Debug,
			Monitor: cfg.Monitor,
		},
		done: make(chan struct{}),
	}
}

// WithRandom replaces the source of start offsets.
func (m *Miner) WithRandom(r io.Reader) *Miner {
	m.random = r
	return m
}

// WithDeriver replaces the per-worker digest pipeline factory.
func (m *Miner) WithDeriver(f func() worker.Deriver) *Miner {
	m.newDeriver = f
	return m
}

// WithExit replaces the hook a worker calls after printing a match.
func (m *Miner) WithExit(f func(code int)) *Miner {
	m.shared.Exit = f
	return m
}

// Shared returns the handle passed to every worker.
func (m *Miner) Shared() *worker.Shared {
	return m.shared
}

// Cursors returns the randomized start cursor of every worker. A short read from
// the random source is logged and the partial offset is used.
func (m *Miner) Cursors() []uint64 {
	bases := keyspace.Partition(m.config.Workers)
	cursors := make([]uint64, len(bases))
	for i, base := range bases {
		off, err := keyspace.RandomOffset(m.random)
		if err != nil {
			m.logger.Printf("Data for worker %d was not randomized: %v", i, err)
		}
		cursors[i] = keyspace.StartCursor(base, off)
	}
	return cursors
}

// Mine runs the workers and blocks until all of them return. With the default
// exit hook a match never returns here because the process is gone.
func (m *Miner) Mine() (*types.MatchResult, error) {
	cursors := m.Cursors()
	workers := make([]*worker.Worker, len(cursors))
	statuses := make([]types.Status, len(cursors))

	if m.config.Monitor {
		ticker := time.NewTicker(m.config.MonitorInterval)
		go m.periodicReporter(ticker)
	}

	for i, cursor := range cursors {
		workers[i] = worker.NewWorker(i, m.workerConfig, m.shared, m.newDeriver(), cursor)
		m.wg.Add(1)
		go func(i int) {
			defer m.wg.Done()
			statuses[i] = workers[i].Run()
		}(i)
	}

	m.wg.Wait()
	m.Stop()

	for _, w := range workers {
		if match := w.Match(); match != nil {
			return match, nil
		}
	}

	for i, status := range statuses {
		m.shared.Console.WorkerStatus(i, status)
	}
	return nil, fmt.Errorf("%w: all %d workers stopped", ErrNoMatch, len(workers))
}

// Stop ends the progress reporter and asks running workers to return.
func (m *Miner) Stop() {
	m.once.Do(func() { close(m.done) })
	m.shared.Stop()
}

// periodicReporter prints the number of keys checked since the previous tick.
// The counter holds rejected batches, so it is scaled by the batch size.
func (m *Miner) periodicReporter(ticker *time.Ticker) {
	defer ticker.Stop()
	var last uint64
	for {
		select {
		case <-ticker.C:
			cur := m.shared.Counter.Load() * keyspace.BatchSize
			m.shared.Console.Throughput(cur - last)
			last = cur
		case <-m.done:
			return
		}
	}
}
