// Package probe invokes the target CLI's --tldr interface and assembles the
// parsed Document. The target is only ever run with fixed argument lists.
package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/aidanlsb/tldrgen/internal/tldr"
)

// DefaultTimeout bounds a single introspection call when the config does not
// override it.
const DefaultTimeout = 30 * time.Second

// ErrNotFound is returned when the target CLI is not on PATH.
var ErrNotFound = errors.New("command not found")

// Runner executes one target-CLI invocation and returns its stdout.
// Production code uses ExecRunner; tests substitute a stub.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs the target through os/exec with a per-call timeout.
type ExecRunner struct {
	Timeout time.Duration
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return strings.TrimRight(stdout.String(), "\n"), nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("timed out after %s", timeout)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = fmt.Sprintf("exit status %d", exitErr.ExitCode())
		}
		return "", fmt.Errorf("command failed: %s", msg)
	}
	return "", err
}

// Client fetches TLDR metadata from one target CLI.
type Client struct {
	CLI      string
	Runner   Runner
	JSONMode bool // v0.1 fan-out uses --tldr=json instead of --tldr

	// Progress, when set, is called once per fan-out fetch failure so the
	// operator sees skipped commands as they happen.
	Progress func(command string, err error)
}

// CheckAvailable verifies the target CLI exists on PATH before any probing.
func CheckAvailable(cli string) error {
	if _, err := exec.LookPath(cli); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, cli)
	}
	return nil
}

// Fetch runs the introspection flow: one global --tldr call, then for the
// v0.1 format one call per declared command. Fan-out failures do not abort
// the run; the affected names are recorded as unreachable.
func (c *Client) Fetch(ctx context.Context) (*tldr.Document, error) {
	out, err := c.Runner.Run(ctx, c.CLI, "--tldr")
	if err != nil {
		return nil, fmt.Errorf("introspection failed: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return nil, fmt.Errorf("introspection failed: %s --tldr produced no output", c.CLI)
	}

	if tldr.DetectFormat(out) == tldr.FormatNDJSON {
		doc, err := tldr.ParseNDJSON(out)
		if err != nil {
			return nil, err
		}
		return doc, nil
	}

	index := tldr.ParseIndex(out)
	doc := &tldr.Document{
		ToolName:         index.Name,
		Version:          index.Version,
		Summary:          index.Summary,
		TLDRCall:         index.TLDRCall,
		Format:           tldr.FormatASCII,
		DeclaredCommands: index.Commands,
	}

	for _, command := range index.Commands {
		rec, err := c.fetchCommand(ctx, command)
		if err != nil {
			doc.Unreachable = append(doc.Unreachable, command)
			if c.Progress != nil {
				c.Progress(command, err)
			}
			continue
		}
		doc.Commands = append(doc.Commands, rec)
	}

	return doc, nil
}

// fetchCommand issues one fan-out call. Dot-separated names become space
// separated argv segments: "node.read" runs as "<cli> node read --tldr".
func (c *Client) fetchCommand(ctx context.Context, command string) (*tldr.CommandRecord, error) {
	args := strings.Split(strings.ReplaceAll(command, ".", " "), " ")
	if c.JSONMode {
		args = append(args, "--tldr=json")
	} else {
		args = append(args, "--tldr")
	}

	out, err := c.Runner.Run(ctx, c.CLI, args...)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out) == "" {
		return nil, fmt.Errorf("empty tldr response")
	}

	if c.JSONMode {
		return tldr.ParseCommandJSON(out, command)
	}
	return tldr.ParseCommand(out, command), nil
}
