package cli_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notexe/remind/internal/cli"
	"github.com/notexe/remind/internal/terminal"
)

// CLI runs commands against a private config and database in a temp
// directory. Input is never a terminal, so prompts read plain lines.
type CLI struct {
	t      *testing.T
	Dir    string
	Config string
}

func NewCLI(t *testing.T) *CLI {
	t.Helper()

	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf("store:\n  path: %s\nui:\n  colored_output: false\n",
		filepath.Join(dir, "reminders.db"))
	if err := os.WriteFile(cfg, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return &CLI{t: t, Dir: dir, Config: cfg}
}

// Run executes the CLI with the given args and returns stdout, stderr, and exit code.
func (c *CLI) Run(args ...string) (string, string, int) {
	return c.RunWithInput("", args...)
}

// RunWithInput executes the CLI with stdin and returns stdout, stderr, and exit code.
func (c *CLI) RunWithInput(stdin string, args ...string) (string, string, int) {
	var outBuf, errBuf bytes.Buffer

	term := terminal.New(strings.NewReader(stdin), &outBuf)
	full := append([]string{"remind", "--config", c.Config}, args...)
	code := cli.Run(context.Background(), term, &errBuf, full)

	return outBuf.String(), errBuf.String(), code
}

// MustRun fails the test if the command exits non-zero and returns stdout.
func (c *CLI) MustRun(args ...string) string {
	c.t.Helper()

	stdout, stderr, code := c.Run(args...)
	if code != 0 {
		c.t.Fatalf("command %v failed with exit code %d\nstderr: %s", args, code, stderr)
	}

	return stdout
}

// MustFail fails the test if the command succeeds and returns stderr.
func (c *CLI) MustFail(args ...string) string {
	c.t.Helper()

	stdout, stderr, code := c.Run(args...)
	if code == 0 {
		c.t.Fatalf("command %v should have failed but succeeded\nstdout: %s", args, stdout)
	}

	return stderr
}
