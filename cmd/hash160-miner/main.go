package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/screa/hash160-miner/internal/config"
	logpkg "github.com/screa/hash160-miner/internal/logger"
	"github.com/screa/hash160-miner/internal/report"
	minerpkg "github.com/screa/hash160-miner/pkg/miner"
	"github.com/screa/hash160-miner/pkg/types"
	"github.com/spf13/cobra"
)

// Process exit codes
const (
	ExitMatch       = 0
	ExitUsage       = 1
	ExitNoMatch     = 2
	ExitInterrupted = 130
)

var (
	cfg    = config.NewConfig()
	logger *logpkg.Logger
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "hash160-miner",
		Short: "Parallel secp256k1 key search for a fixed HASH160",
		Long: `Searches the secp256k1 private key space for the key whose compressed
public key hashes (SHA-256 then RIPEMD-160) to a fixed 20-byte target.
The target and the number of workers are fixed at build time.`,
		Args: cobra.NoArgs,
		Run:  runMiner,
	}

	rootCmd.Flags().BoolVarP(&cfg.Monitor, "monitor", "m", false, "Print the number of keys checked every second")
	rootCmd.Flags().BoolVarP(&cfg.Debug, "debug", "d", false, "Print every checked key (very slow)")
	rootCmd.Flags().StringVarP(&cfg.LogFile, "log-file", "l", "", "Log file for diagnostics (default: stderr)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitUsage)
	}
}

func runMiner(cmd *cobra.Command, args []string) {
	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitUsage)
	}

	setupLogging()
	logger.Printf("Starting hash160 miner with %d workers...", cfg.Workers)
	logger.Printf("Target: %s (%s)", cfg.TargetAddress(), cfg.Target)

	miner := minerpkg.NewMiner(cfg, logger, report.NewConsole(os.Stdout))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	type outcome struct {
		match *types.MatchResult
		err   error
	}
	resultChan := make(chan outcome, 1)
	go func() {
		match, err := miner.Mine()
		resultChan <- outcome{match, err}
	}()

	select {
	case res := <-resultChan:
		// Only reachable when every worker failed; a match exits from the worker.
		if errors.Is(res.err, minerpkg.ErrNoMatch) {
			logger.Printf("Search ended: %v", res.err)
			os.Exit(ExitNoMatch)
		}
		if res.err != nil {
			logger.Printf("Search failed: %v", res.err)
			os.Exit(ExitUsage)
		}
		os.Exit(ExitMatch)
	case sig := <-sigChan:
		logger.Printf("Received %s, stopping.", sig)
		os.Exit(ExitInterrupted)
	}
}

func setupLogging() {
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(ExitUsage)
		}
		logger = logpkg.NewWriter(file)
		logger.SetFlags(logpkg.LstdFlags | logpkg.Lmicroseconds)
	} else {
		logger = logpkg.New()
		logger.SetFlags(logpkg.LstdFlags)
	}
}
