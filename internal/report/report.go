// Package report projects a validated Document and its analysis into the
// output artifacts: plain-text outline, markdown with TOC, JSON/YAML
// structured dumps and the HTML visual report.
//
// Renderers never fail on a Document that validated with zero errors;
// fields missing due to warnings degrade to placeholder text.
package report

import (
	"time"

	"github.com/aidanlsb/tldrgen/internal/analyze"
	"github.com/aidanlsb/tldrgen/internal/tldr"
)

// SpecVersion is the TLDR spec revision this tool understands, recorded in
// generated artifacts.
const SpecVersion = "v0.2"

// GeneratedBy identifies the producer inside structured dumps.
const GeneratedBy = "tldrgen"

// Renderer turns a Document plus its analysis into one artifact.
type Renderer interface {
	// Render produces the artifact body.
	Render(doc *tldr.Document, a *analyze.Analysis) ([]byte, error)
	// Ext is the artifact file extension, without the dot.
	Ext() string
}

// Dump is the structured representation shared by the JSON and YAML
// renderers. It carries every parsed field plus the computed analytics and
// can be re-consumed programmatically; LoadDump reverses it.
type Dump struct {
	Metadata    Metadata              `json:"metadata" yaml:"metadata"`
	Keymap      map[string]string     `json:"keymap,omitempty" yaml:"keymap,omitempty"`
	Commands    []*tldr.CommandRecord `json:"commands" yaml:"commands"`
	Unreachable []string              `json:"unreachable,omitempty" yaml:"unreachable,omitempty"`
	Analytics   *analyze.Analysis     `json:"analytics" yaml:"analytics"`
	GeneratedBy string                `json:"generatedBy" yaml:"generatedBy"`
}

// Metadata describes the introspected tool and the generation run.
type Metadata struct {
	Name          string `json:"name" yaml:"name"`
	Version       string `json:"version" yaml:"version"`
	Summary       string `json:"summary,omitempty" yaml:"summary,omitempty"`
	TLDRCall      string `json:"tldrCall,omitempty" yaml:"tldrCall,omitempty"`
	Format        string `json:"format" yaml:"format"`
	Generated     string `json:"generated" yaml:"generated"`
	TLDRSpec      string `json:"tldrSpec" yaml:"tldrSpec"`
	TotalCommands int    `json:"totalCommands" yaml:"totalCommands"`
}

// NewDump assembles the dump structure for doc at the given time.
func NewDump(doc *tldr.Document, a *analyze.Analysis, now time.Time) *Dump {
	return &Dump{
		Metadata: Metadata{
			Name:          doc.ToolName,
			Version:       doc.Version,
			Summary:       doc.Summary,
			TLDRCall:      doc.TLDRCall,
			Format:        doc.Format.String(),
			Generated:     now.UTC().Format(time.RFC3339),
			TLDRSpec:      SpecVersion,
			TotalCommands: len(doc.Commands),
		},
		Keymap:      doc.Keymap,
		Commands:    doc.Commands,
		Unreachable: doc.Unreachable,
		Analytics:   a,
		GeneratedBy: GeneratedBy,
	}
}

// documentFromDump rebuilds the Document a dump was produced from, with
// command order and content intact. Derived analytics are discarded.
func documentFromDump(d *Dump) *tldr.Document {
	format := tldr.FormatASCII
	if d.Metadata.Format == tldr.FormatNDJSON.String() {
		format = tldr.FormatNDJSON
	}

	doc := &tldr.Document{
		ToolName:    d.Metadata.Name,
		Version:     d.Metadata.Version,
		Summary:     d.Metadata.Summary,
		TLDRCall:    d.Metadata.TLDRCall,
		Format:      format,
		Keymap:      d.Keymap,
		Commands:    d.Commands,
		Unreachable: d.Unreachable,
	}
	for _, rec := range d.Commands {
		doc.DeclaredCommands = append(doc.DeclaredCommands, rec.Name)
	}
	return doc
}

// placeholder substitutes a visible marker for an optional field that was
// missing (a warning, not an error).
func placeholder(s, marker string) string {
	if s == "" {
		return marker
	}
	return s
}
