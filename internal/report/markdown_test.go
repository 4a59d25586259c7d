package report

import (
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/aidanlsb/tldrgen/internal/analyze"
)

// headings parses rendered markdown and returns every heading as
// "level:text", in document order.
func headings(t *testing.T, src []byte) []string {
	t.Helper()
	root := goldmark.New().Parser().Parse(gmtext.NewReader(src))

	var out []string
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			out = append(out, strings.Repeat("#", h.Level)+" "+string(n.Text(src)))
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walking markdown AST: %v", err)
	}
	return out
}

func TestMarkdownStructure(t *testing.T) {
	doc := sampleDoc()
	out, err := Markdown{}.Render(doc, analyze.Analyze(doc, 0))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	got := headings(t, out)
	want := []string{
		"# forest v1.2.0",
		"## Contents",
		"## Top-level commands",
		"### capture",
		"### search",
		"## Namespace node",
		"### node.read",
		"## Analytics",
	}
	if len(got) != len(want) {
		t.Fatalf("headings = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("heading %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// Each TOC link's anchor matches the slug of a section heading that exists
// in the body.
func TestMarkdownTOCAnchors(t *testing.T) {
	doc := sampleDoc()
	out, err := Markdown{}.Render(doc, analyze.Analyze(doc, 0))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	body := string(out)
	for _, heading := range []string{"Top-level commands", "Namespace node", "Analytics"} {
		link := "- [" + heading + "](#" + Anchor(heading) + ")"
		if !strings.Contains(body, link) {
			t.Errorf("missing TOC entry %q", link)
		}
		if !strings.Contains(body, "## "+heading+"\n") {
			t.Errorf("missing body section %q", heading)
		}
	}
}

func TestAnchor(t *testing.T) {
	tests := []struct {
		heading string
		want    string
	}{
		{"Top-level commands", "top-level-commands"},
		{"Namespace node", "namespace-node"},
		{"Analytics", "analytics"},
	}
	for _, tt := range tests {
		if got := Anchor(tt.heading); got != tt.want {
			t.Errorf("Anchor(%q) = %q, want %q", tt.heading, got, tt.want)
		}
	}
}

func TestMarkdownCommandDetails(t *testing.T) {
	doc := sampleDoc()
	out, err := Markdown{}.Render(doc, analyze.Analyze(doc, 0))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	body := string(out)
	for _, want := range []string{
		"Create a note",
		"| `--title` | STR |",
		"```\nforest capture --title x\n```",
		"See also: `search`",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestMarkdownMissingPurposePlaceholder(t *testing.T) {
	doc := sampleDoc()
	doc.Commands[1].Purpose = ""

	out, err := Markdown{}.Render(doc, analyze.Analyze(doc, 0))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(string(out), "_(no purpose provided)_") {
		t.Error("missing purpose should render a visible placeholder")
	}
}
