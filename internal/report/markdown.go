package report

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"

	"github.com/aidanlsb/tldrgen/internal/analyze"
	"github.com/aidanlsb/tldrgen/internal/tldr"
)

// Markdown renders the hierarchical outline: a table of contents whose
// anchors are derived from the namespace sections, one section per
// namespace, one subsection per command, and an analytics appendix.
type Markdown struct{}

func (Markdown) Ext() string { return "md" }

// Anchor converts a heading to its markdown fragment identifier.
func Anchor(heading string) string {
	return slug.Make(heading)
}

func (Markdown) Render(doc *tldr.Document, a *analyze.Analysis) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s v%s\n\n",
		placeholder(doc.ToolName, "(unnamed tool)"),
		placeholder(doc.Version, "?"))
	if doc.Summary != "" {
		fmt.Fprintf(&b, "> %s\n\n", doc.Summary)
	}

	// Section headings drive both the TOC and the body so the anchors
	// always agree.
	type section struct {
		heading  string
		commands []string
	}
	var sections []section
	if len(a.Namespaces.TopLevel) > 0 {
		sections = append(sections, section{"Top-level commands", a.Namespaces.SortedTopLevel()})
	}
	for _, prefix := range a.Namespaces.GroupNames() {
		sections = append(sections, section{"Namespace " + prefix, a.Namespaces.SortedGroup(prefix)})
	}

	fmt.Fprintf(&b, "## Contents\n\n")
	for _, sec := range sections {
		fmt.Fprintf(&b, "- [%s](#%s)\n", sec.heading, Anchor(sec.heading))
	}
	fmt.Fprintf(&b, "- [Analytics](#%s)\n\n", Anchor("Analytics"))

	byName := make(map[string]*tldr.CommandRecord, len(doc.Commands))
	for _, rec := range doc.Commands {
		if _, ok := byName[rec.Name]; !ok {
			byName[rec.Name] = rec
		}
	}

	for _, sec := range sections {
		fmt.Fprintf(&b, "## %s\n\n", sec.heading)
		for _, name := range sec.commands {
			writeCommandSection(&b, byName[name], name)
		}
	}

	fmt.Fprintf(&b, "## Analytics\n\n")
	writeMarkdownAnalytics(&b, a)

	return []byte(b.String()), nil
}

func writeCommandSection(b *strings.Builder, rec *tldr.CommandRecord, name string) {
	fmt.Fprintf(b, "### `%s`\n\n", name)
	if rec == nil {
		fmt.Fprintf(b, "_(no record)_\n\n")
		return
	}

	fmt.Fprintf(b, "%s\n\n", placeholder(rec.Purpose, "_(no purpose provided)_"))

	if rec.InputsText != "" || rec.OutputsText != "" {
		fmt.Fprintf(b, "- **Inputs**: %s\n", placeholder(rec.InputsText, "—"))
		fmt.Fprintf(b, "- **Outputs**: %s\n\n", placeholder(rec.OutputsText, "—"))
	}
	if len(rec.Inputs) > 0 {
		fmt.Fprintf(b, "- **Inputs**: %s\n", paramList(rec.Inputs))
	}
	if len(rec.Outputs) > 0 {
		fmt.Fprintf(b, "- **Outputs**: %s\n", paramList(rec.Outputs))
	}
	if len(rec.Inputs) > 0 || len(rec.Outputs) > 0 {
		fmt.Fprintln(b)
	}

	if rec.SideEffectsText != "" {
		fmt.Fprintf(b, "- **Side effects**: %s\n\n", rec.SideEffectsText)
	}
	if len(rec.SideEffects) > 0 {
		fmt.Fprintf(b, "- **Side effects**: `%s`\n\n", strings.Join(rec.SideEffects, "`, `"))
	}

	if len(rec.Flags) > 0 {
		fmt.Fprintf(b, "| Flag | Type | Default | Description |\n")
		fmt.Fprintf(b, "|------|------|---------|-------------|\n")
		for _, flag := range rec.Flags {
			name := "--" + flag.Name
			if flag.Alias != "" {
				name += ", -" + flag.Alias
			}
			fmt.Fprintf(b, "| `%s` | %s | %s | %s |\n",
				name, placeholder(flag.Type, "—"), placeholder(flag.Default, "—"),
				placeholder(flag.Description, "—"))
		}
		fmt.Fprintln(b)
	}

	if len(rec.Examples) > 0 {
		fmt.Fprintf(b, "```\n%s\n```\n\n", strings.Join(rec.Examples, "\n"))
	}

	if len(rec.Related) > 0 {
		fmt.Fprintf(b, "See also: `%s`\n\n", strings.Join(rec.Related, "`, `"))
	}
}

func paramList(params []tldr.Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		s := "`" + p.Name + "`"
		if p.Type != "" {
			s += " (" + p.Type + ")"
		}
		if p.Required {
			s += " *required*"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func writeMarkdownAnalytics(b *strings.Builder, a *analyze.Analysis) {
	fmt.Fprintf(b, "- Total commands: %d\n", a.TotalCommands)
	fmt.Fprintf(b, "- Total flags: %d (%.2f per command)\n",
		a.FlagTypes.Total, a.FlagTypes.AveragePerCommand)
	fmt.Fprintf(b, "- Commands with examples: %d/%d (%.1f%%)\n",
		a.Coverage.WithExamples, a.Coverage.Total, a.Coverage.ExamplesPct)
	fmt.Fprintf(b, "- Commands with related links: %d/%d (%.1f%%)\n\n",
		a.Coverage.WithRelated, a.Coverage.Total, a.Coverage.RelatedPct)

	if len(a.FlagTypes.Distribution) > 0 {
		fmt.Fprintf(b, "| Flag type | Count |\n|-----------|-------|\n")
		for _, key := range analyze.SortedByCount(a.FlagTypes.Distribution) {
			fmt.Fprintf(b, "| %s | %d |\n", key, a.FlagTypes.Distribution[key])
		}
		fmt.Fprintln(b)
	}

	if len(a.Graph.MostConnected) > 0 {
		fmt.Fprintf(b, "| Command | Connections | Out | In |\n|---------|-------------|-----|----|\n")
		for _, conn := range a.Graph.MostConnected {
			fmt.Fprintf(b, "| `%s` | %d | %d | %d |\n",
				conn.Command, conn.Centrality, conn.Outgoing, conn.Incoming)
		}
		fmt.Fprintln(b)
	}
}
