// Package tldr defines the parsed model of a TLDR introspection response and
// the decoders for the two wire formats.
package tldr

import "strings"

// Format identifies which wire format a Document was decoded from.
type Format int

const (
	// FormatASCII is the v0.1 line-oriented KEY: VALUE format.
	FormatASCII Format = iota
	// FormatNDJSON is the v0.2 header + keymap + one-JSON-object-per-line format.
	FormatNDJSON
)

func (f Format) String() string {
	if f == FormatNDJSON {
		return "ndjson"
	}
	return "ascii"
}

// Document is the full parsed result of one introspection run against a
// target CLI. It is constructed once by a decoder and never mutated after;
// validation, analysis and rendering only read it.
type Document struct {
	ToolName string `json:"toolName" yaml:"toolName"`
	Version  string `json:"version" yaml:"version"`
	Summary  string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// TLDRCall is the advertised introspection invocation from the v0.1
	// global stanza (TLDR_CALL), empty for NDJSON documents.
	TLDRCall string `json:"tldrCall,omitempty" yaml:"tldrCall,omitempty"`

	Format Format `json:"-" yaml:"-"`

	// Keymap maps short JSON keys to semantic field names. Only present for
	// NDJSON documents; the ASCII format has a fixed uppercase vocabulary.
	Keymap map[string]string `json:"keymap,omitempty" yaml:"keymap,omitempty"`

	// DeclaredCommands is the command list from the v0.1 global index, in
	// declaration order. For NDJSON documents it mirrors Commands.
	DeclaredCommands []string `json:"declaredCommands,omitempty" yaml:"declaredCommands,omitempty"`

	// Commands holds the parsed records in declaration order. Never sorted.
	Commands []*CommandRecord `json:"commands" yaml:"commands"`

	// Unreachable lists declared commands whose fan-out call failed
	// (v0.1 only). Each entry becomes a compliance error.
	Unreachable []string `json:"unreachable,omitempty" yaml:"unreachable,omitempty"`
}

// CommandRecord is the metadata for a single command within a Document.
//
// The two formats describe channels differently: v0.1 carries free-text
// INPUTS/OUTPUTS/SIDE_EFFECTS descriptors (the *Text fields), v0.2 carries
// structured parameter lists and domain:operation side-effect tags.
type CommandRecord struct {
	Name    string `json:"name" yaml:"name"`
	Purpose string `json:"purpose" yaml:"purpose"`

	InputsText  string `json:"inputsText,omitempty" yaml:"inputsText,omitempty"`
	OutputsText string `json:"outputsText,omitempty" yaml:"outputsText,omitempty"`

	Inputs  []Param `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs []Param `json:"outputs,omitempty" yaml:"outputs,omitempty"`

	Flags []FlagSpec `json:"flags,omitempty" yaml:"flags,omitempty"`

	SideEffectsText string   `json:"sideEffectsText,omitempty" yaml:"sideEffectsText,omitempty"`
	SideEffects     []string `json:"sideEffects,omitempty" yaml:"sideEffects,omitempty"`

	Examples []string `json:"examples,omitempty" yaml:"examples,omitempty"`

	// Related references other command names. Targets are not required to
	// exist in the Document; dangling references are kept as written.
	Related []string `json:"related,omitempty" yaml:"related,omitempty"`

	// SchemaJSON is the raw SCHEMA_JSON payload (v0.1, optional).
	SchemaJSON string `json:"schemaJson,omitempty" yaml:"schemaJson,omitempty"`

	// FetchedAs is the identifier used for the fan-out call that produced
	// this record (v0.1 only). A mismatch with Name is a warning.
	FetchedAs string `json:"fetchedAs,omitempty" yaml:"fetchedAs,omitempty"`

	// Raw preserves the verbatim wire payload (the ASCII stanza or the
	// NDJSON line) for renderers that show it unmodified.
	Raw string `json:"raw,omitempty" yaml:"raw,omitempty"`

	// DroppedFlags holds FLAGS entries that failed the flag grammar and were
	// excluded from Flags. Parse diagnostics, not document content: the
	// validator turns each into a warning and dumps omit them.
	DroppedFlags []string `json:"-" yaml:"-"`
}

// FlagSpec describes one command flag.
type FlagSpec struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Default     string `json:"default,omitempty" yaml:"default,omitempty"`
	Alias       string `json:"alias,omitempty" yaml:"alias,omitempty"`
	Description string `json:"description" yaml:"description"`
}

// Param describes one structured input or output parameter (v0.2).
type Param struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Default  string `json:"default,omitempty" yaml:"default,omitempty"`
}

// Namespace returns the namespace prefix of a command name: the segment
// before the first dot, or "" for a top-level name.
func Namespace(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return ""
}

// flagTypeVocabulary is the recommended open vocabulary for FlagSpec.Type.
// v0.2 uses the lowercase set, v0.1 the legacy uppercase set. Types outside
// both sets are accepted but tallied as "unknown" by the analyzer.
var flagTypeVocabulary = map[string]bool{
	"str": true, "bool": true, "int": true, "float": true,
	"file": true, "dir": true, "list": true, "enum": true,
	"STR": true, "BOOL": true, "INT": true, "FLOAT": true,
	"FILE": true, "LIST": true, "STDIN": true,
}

// KnownFlagType reports whether t belongs to the recommended type vocabulary
// of either format version.
func KnownFlagType(t string) bool {
	return flagTypeVocabulary[t]
}
