// Command remind manages reminders from the terminal.
//
// Usage:
//
//	remind                    # today's tasks
//	remind add Buy milk -d tomorrow
//	remind complete 1 2
//	remind --help
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/notexe/remind/internal/cli"
	"github.com/notexe/remind/internal/terminal"
)

func main() {
	os.Exit(run())
}

func run() int {
	term := terminal.Stdio()
	defer term.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		// A picker blocked on a key read cannot see the cancellation.
		if term.IsRaw() {
			term.Reset()
			os.Exit(130)
		}
		cancel()
	}()

	return cli.Run(ctx, term, os.Stderr, os.Args)
}
