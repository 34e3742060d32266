// Package report writes the miner's stdout protocol. Every multi-line block is
// written under one lock so concurrent workers never interleave.
package report

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"sync"

	"github.com/screa/hash160-miner/pkg/types"
)

// Console is the shared, mutex-guarded output handle.
type Console struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// NewConsole wraps w. Writes are flushed at the end of every block.
func NewConsole(w io.Writer) *Console {
	return &Console{w: bufio.NewWriter(w)}
}

// Solution prints the match report.
func (c *Console) Solution(m *types.MatchResult) error {
	return c.block("SOLUTION FOUND", m.SecretKey[:], m.PublicKey[:], m.SHA256[:], m.RIPEMD160[:])
}

// CheckedKey prints the trace block for a rejected candidate.
func (c *Console) CheckedKey(secret, public, sha, rmd []byte) error {
	return c.block("CHECKED KEY", secret, public, sha, rmd)
}

// Throughput prints one monitor sample.
func (c *Console) Throughput(keys uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%d keys checked in the last second\n", keys)
	return c.w.Flush()
}

// WorkerStatus prints the terminal status of one worker.
func (c *Console) WorkerStatus(index int, status types.Status) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "Thread %d returned: %d.\n", index, int(status))
	return c.w.Flush()
}

func (c *Console) block(title string, secret, public, sha, rmd []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.w.WriteString(title)
	c.w.WriteByte('\n')
	c.field("secret key:     ", secret)
	c.field("public key:     ", public)
	c.field("SHA256 hash:    ", sha)
	c.field("RIPEMD160 hash: ", rmd)
	return c.w.Flush()
}

func (c *Console) field(label string, data []byte) {
	var buf [2 * 33]byte
	c.w.WriteString(label)
	n := hex.Encode(buf[:], data)
	c.w.Write(buf[:n])
	c.w.WriteByte('\n')
}
