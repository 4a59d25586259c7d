package report

import (
	"strings"
	"testing"

	"github.com/aidanlsb/tldrgen/internal/analyze"
	"github.com/aidanlsb/tldrgen/internal/tldr"
)

func TestHTMLRender(t *testing.T) {
	doc := sampleDoc()
	out, err := HTML{}.Render(doc, analyze.Analyze(doc, 0))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	body := string(out)
	if !strings.HasPrefix(body, "<!DOCTYPE html>") {
		t.Error("missing doctype")
	}
	for _, want := range []string{
		"<h1>forest v1.2.0</h1>",
		"A note-taking CLI",
		"TLDR Spec: v0.2",
		"Command Hierarchy",
		"<code>capture</code>",
		"<code>node.read</code>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestHTMLEscapesUntrustedFields(t *testing.T) {
	doc := sampleDoc()
	doc.Summary = `<script>alert("x")</script>`

	out, err := HTML{}.Render(doc, analyze.Analyze(doc, 0))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	body := string(out)
	if strings.Contains(body, "<script>alert") {
		t.Error("summary rendered unescaped")
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Error("summary should be HTML-escaped")
	}
}

func TestHTMLOmitsConnectivityWhenEmpty(t *testing.T) {
	doc := &tldr.Document{
		ToolName: "lonely",
		Version:  "0.1",
		Format:   tldr.FormatASCII,
		Commands: []*tldr.CommandRecord{{Name: "only", Purpose: "p"}},
	}
	out, err := HTML{}.Render(doc, analyze.Analyze(doc, 0))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(string(out), "Most Connected Commands") {
		t.Error("connectivity section should be omitted for isolated commands")
	}
}
