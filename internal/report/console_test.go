package report

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/screa/hash160-miner/pkg/keyspace"
	"github.com/screa/hash160-miner/pkg/types"
)

func TestSolutionFormat(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	m := &types.MatchResult{SecretKey: keyspace.NewSecretKey(0x04, 0xff)}
	m.PublicKey[0] = 0x02
	m.SHA256[31] = 0xab
	m.RIPEMD160[0] = 0x10
	if err := c.Solution(m); err != nil {
		t.Fatal(err)
	}

	want := "SOLUTION FOUND\n" +
		"secret key:     00000000000000000000000000000000000000000000000400000000000000ff\n" +
		"public key:     02" + strings.Repeat("00", 32) + "\n" +
		"SHA256 hash:    " + strings.Repeat("00", 31) + "ab\n" +
		"RIPEMD160 hash: 10" + strings.Repeat("00", 19) + "\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestStatusAndThroughputLines(t *testing.T) {
	tests := []struct {
		name  string
		write func(*Console) error
		want  string
	}{
		{
			name:  "error status",
			write: func(c *Console) error { return c.WorkerStatus(3, types.StatusError) },
			want:  "Thread 3 returned: 1.\n",
		},
		{
			name:  "exhausted status",
			write: func(c *Console) error { return c.WorkerStatus(0, types.StatusExhausted) },
			want:  "Thread 0 returned: 0.\n",
		},
		{
			name:  "throughput",
			write: func(c *Console) error { return c.Throughput(18446744073709551615) },
			want:  "18446744073709551615 keys checked in the last second\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.write(NewConsole(&buf)); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestBlocksDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	const writers, blocks = 8, 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			k := keyspace.NewSecretKey(0x04, uint64(i))
			for j := 0; j < blocks; j++ {
				c.CheckedKey(k[:], make([]byte, 33), make([]byte, 32), make([]byte, 20))
			}
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != writers*blocks*5 {
		t.Fatalf("got %d lines, want %d", len(lines), writers*blocks*5)
	}
	prefixes := []string{"CHECKED KEY", "secret key:     ", "public key:     ", "SHA256 hash:    ", "RIPEMD160 hash: "}
	for i, line := range lines {
		if !strings.HasPrefix(line, prefixes[i%5]) {
			t.Fatalf("line %d = %q, want prefix %q", i, line, prefixes[i%5])
		}
	}
}
