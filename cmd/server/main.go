// Package main implements the wordbank server: a vocabulary API whose
// words are enriched with LLM-generated example sentences by a
// background worker.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/wordbank/internal/redact"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", redact.Error(err))
		return 1
	}
	return 0
}
