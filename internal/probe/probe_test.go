package probe

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/aidanlsb/tldrgen/internal/tldr"
)

// stubRunner maps joined argv strings to canned responses and records every
// invocation.
type stubRunner struct {
	responses map[string]string
	failures  map[string]error
	calls     []string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	key := name + " " + strings.Join(args, " ")
	s.calls = append(s.calls, key)
	if err, ok := s.failures[key]; ok {
		return "", err
	}
	if out, ok := s.responses[key]; ok {
		return out, nil
	}
	return "", fmt.Errorf("unexpected invocation %q", key)
}

const asciiIndex = "NAME: forest\nVERSION: 1.2.0\nSUMMARY: A note-taking CLI\nCOMMANDS: capture, node.read\nTLDR_CALL: forest --tldr"

func TestFetchASCII(t *testing.T) {
	runner := &stubRunner{responses: map[string]string{
		"forest --tldr":           asciiIndex,
		"forest capture --tldr":   "CMD: capture\nPURPOSE: Create a note",
		"forest node read --tldr": "CMD: node.read\nPURPOSE: Read a node",
	}}
	client := &Client{CLI: "forest", Runner: runner}

	doc, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if doc.ToolName != "forest" || doc.Version != "1.2.0" {
		t.Errorf("metadata = %q/%q", doc.ToolName, doc.Version)
	}
	if doc.Format != tldr.FormatASCII {
		t.Errorf("Format = %v, want ascii", doc.Format)
	}
	if len(doc.Commands) != 2 {
		t.Fatalf("Commands = %d, want 2", len(doc.Commands))
	}
	if doc.Commands[1].Name != "node.read" {
		t.Errorf("second command = %q", doc.Commands[1].Name)
	}

	// Dot-separated names become space-separated argv segments.
	want := []string{
		"forest --tldr",
		"forest capture --tldr",
		"forest node read --tldr",
	}
	if !reflect.DeepEqual(runner.calls, want) {
		t.Errorf("calls = %v, want %v", runner.calls, want)
	}
}

func TestFetchASCIIContinuesOnFanOutFailure(t *testing.T) {
	runner := &stubRunner{
		responses: map[string]string{
			"forest --tldr":         asciiIndex,
			"forest capture --tldr": "CMD: capture\nPURPOSE: Create a note",
		},
		failures: map[string]error{
			"forest node read --tldr": errors.New("exit status 1"),
		},
	}

	var reported []string
	client := &Client{
		CLI:    "forest",
		Runner: runner,
		Progress: func(command string, err error) {
			reported = append(reported, command)
		},
	}

	doc, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v, want nil (fan-out failures do not abort)", err)
	}
	if len(doc.Commands) != 1 || doc.Commands[0].Name != "capture" {
		t.Errorf("Commands = %+v, want only capture", doc.Commands)
	}
	if !reflect.DeepEqual(doc.Unreachable, []string{"node.read"}) {
		t.Errorf("Unreachable = %v, want [node.read]", doc.Unreachable)
	}
	if !reflect.DeepEqual(reported, []string{"node.read"}) {
		t.Errorf("Progress calls = %v", reported)
	}
}

func TestFetchASCIIEmptyFanOutResponse(t *testing.T) {
	runner := &stubRunner{responses: map[string]string{
		"forest --tldr":         "NAME: forest\nVERSION: 1\nCOMMANDS: capture",
		"forest capture --tldr": "   ",
	}}
	client := &Client{CLI: "forest", Runner: runner}

	doc, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !reflect.DeepEqual(doc.Unreachable, []string{"capture"}) {
		t.Errorf("Unreachable = %v, want [capture]", doc.Unreachable)
	}
}

func TestFetchJSONMode(t *testing.T) {
	runner := &stubRunner{responses: map[string]string{
		"forest --tldr":              "NAME: forest\nVERSION: 1\nCOMMANDS: capture",
		"forest capture --tldr=json": `{"CMD":"capture","PURPOSE":"Create a note"}`,
	}}
	client := &Client{CLI: "forest", Runner: runner, JSONMode: true}

	doc, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(doc.Commands) != 1 || doc.Commands[0].Purpose != "Create a note" {
		t.Errorf("Commands = %+v", doc.Commands)
	}
}

func TestFetchNDJSONSingleCall(t *testing.T) {
	runner := &stubRunner{responses: map[string]string{
		"demo --tldr": "--- tool: demo ---\n" +
			"# meta: tool=demo, version=1.0, keymap={cmd:command,p:purpose}\n" +
			`{"cmd":"init","p":"Init"}`,
	}}
	client := &Client{CLI: "demo", Runner: runner}

	doc, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if doc.Format != tldr.FormatNDJSON {
		t.Errorf("Format = %v, want ndjson", doc.Format)
	}
	if len(runner.calls) != 1 {
		t.Errorf("calls = %v, want a single probe", runner.calls)
	}
}

func TestFetchNDJSONParseErrorPropagates(t *testing.T) {
	runner := &stubRunner{responses: map[string]string{
		"demo --tldr": "--- tool: demo ---\n" +
			"# meta: tool=demo, version=1, keymap={cmd:command}\n" +
			"{broken",
	}}
	client := &Client{CLI: "demo", Runner: runner}

	_, err := client.Fetch(context.Background())
	var parseErr *tldr.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error type = %T, want *tldr.ParseError", err)
	}
	if parseErr.Line != 3 {
		t.Errorf("Line = %d, want 3", parseErr.Line)
	}
}

func TestFetchEmptyGlobalOutput(t *testing.T) {
	runner := &stubRunner{responses: map[string]string{"ghost --tldr": ""}}
	client := &Client{CLI: "ghost", Runner: runner}

	_, err := client.Fetch(context.Background())
	if err == nil || !strings.Contains(err.Error(), "introspection failed") {
		t.Errorf("error = %v, want introspection failed", err)
	}
}

func TestFetchGlobalProbeFailure(t *testing.T) {
	runner := &stubRunner{failures: map[string]error{
		"ghost --tldr": errors.New("command failed: boom"),
	}}
	client := &Client{CLI: "ghost", Runner: runner}

	_, err := client.Fetch(context.Background())
	if err == nil || !strings.Contains(err.Error(), "introspection failed") {
		t.Errorf("error = %v, want wrapped introspection failure", err)
	}
}

func TestCheckAvailable(t *testing.T) {
	if err := CheckAvailable("definitely-not-a-real-binary-7c4f"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
