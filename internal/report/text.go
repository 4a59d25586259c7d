package report

import (
	"fmt"
	"strings"

	"github.com/aidanlsb/tldrgen/internal/analyze"
	"github.com/aidanlsb/tldrgen/internal/tldr"
)

// ruleWidth is the width of the section rules in the text outline.
const ruleWidth = 60

// Text renders the flat human-readable outline. Per-command payloads are
// shown verbatim as received from the target CLI.
type Text struct{}

func (Text) Ext() string { return "txt" }

func (Text) Render(doc *tldr.Document, a *analyze.Analysis) ([]byte, error) {
	var b strings.Builder
	heavy := strings.Repeat("=", ruleWidth)
	light := strings.Repeat("-", ruleWidth)

	fmt.Fprintln(&b, heavy)
	fmt.Fprintf(&b, "%s v%s - TLDR reference\n",
		placeholder(doc.ToolName, "(unnamed tool)"),
		placeholder(doc.Version, "?"))
	fmt.Fprintln(&b, heavy)
	if doc.Summary != "" {
		fmt.Fprintf(&b, "Summary:  %s\n", doc.Summary)
	}
	fmt.Fprintf(&b, "Format:   %s\n", doc.Format)
	fmt.Fprintf(&b, "Commands: %d\n", len(doc.Commands))
	if len(doc.Unreachable) > 0 {
		fmt.Fprintf(&b, "Unreachable: %s\n", strings.Join(doc.Unreachable, ", "))
	}

	for _, rec := range doc.Commands {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, light)
		fmt.Fprintf(&b, "COMMAND: %s\n", placeholder(rec.Name, "(unnamed)"))
		fmt.Fprintln(&b, light)
		fmt.Fprintln(&b, placeholder(rec.Raw, "(no payload captured)"))
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, heavy)
	fmt.Fprintln(&b, "ANALYTICS")
	fmt.Fprintln(&b, heavy)
	writeTextAnalytics(&b, a)

	return []byte(b.String()), nil
}

func writeTextAnalytics(b *strings.Builder, a *analyze.Analysis) {
	fmt.Fprintf(b, "Total commands: %d\n", a.TotalCommands)

	fmt.Fprintf(b, "\nHierarchy:\n")
	fmt.Fprintf(b, "  top-level: %d\n", len(a.Namespaces.TopLevel))
	for _, prefix := range a.Namespaces.GroupNames() {
		fmt.Fprintf(b, "  %s: %d\n", prefix, len(a.Namespaces.Groups[prefix]))
	}

	fmt.Fprintf(b, "\nFlag types (total %d, avg %.2f per command):\n",
		a.FlagTypes.Total, a.FlagTypes.AveragePerCommand)
	for _, key := range analyze.SortedByCount(a.FlagTypes.Distribution) {
		fmt.Fprintf(b, "  %s: %d\n", key, a.FlagTypes.Distribution[key])
	}

	if a.SideEffects != nil {
		fmt.Fprintf(b, "\nSide effects (%d tagged, %d untagged):\n",
			a.SideEffects.WithTags, a.SideEffects.WithoutTags)
		for _, tag := range analyze.SortedByCount(a.SideEffects.Distribution) {
			fmt.Fprintf(b, "  %s: %d\n", tag, a.SideEffects.Distribution[tag])
		}
	}

	if len(a.Graph.MostConnected) > 0 {
		fmt.Fprintf(b, "\nMost connected:\n")
		for _, conn := range a.Graph.MostConnected {
			fmt.Fprintf(b, "  %s: %d connections (%d out, %d in)\n",
				conn.Command, conn.Centrality, conn.Outgoing, conn.Incoming)
		}
	}
}
