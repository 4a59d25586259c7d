package tldr

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// asciiLineRe matches one "KEY: value" line of the v0.1 format.
var asciiLineRe = regexp.MustCompile(`^([A-Z_]+):\s*(.*)$`)

// Index is the parsed v0.1 global stanza. The command list is resolved to
// full CommandRecords by one fan-out call per name.
type Index struct {
	Name     string
	Version  string
	Summary  string
	Commands []string
	TLDRCall string
}

// ParseASCIIFields splits raw v0.1 output into a key→value map. Lines that
// do not match the KEY: value shape are ignored; unknown keys are kept so the
// format stays forward compatible.
func ParseASCIIFields(raw string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		m := asciiLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		fields[m[1]] = strings.TrimSpace(m[2])
	}
	return fields
}

// ParseIndex parses the v0.1 global index stanza. Missing fields are left
// empty; the validator reports them.
func ParseIndex(raw string) *Index {
	fields := ParseASCIIFields(raw)
	return &Index{
		Name:     fields["NAME"],
		Version:  fields["VERSION"],
		Summary:  fields["SUMMARY"],
		Commands: splitList(fields["COMMANDS"], ","),
		TLDRCall: fields["TLDR_CALL"],
	}
}

// ParseCommand parses one v0.1 per-command stanza. fetchedAs is the
// identifier used for the fan-out call, recorded for the name cross-check.
func ParseCommand(raw, fetchedAs string) *CommandRecord {
	return commandFromASCIIFields(ParseASCIIFields(raw), fetchedAs, raw)
}

// ParseCommandJSON parses a v0.1 "--tldr=json" response: a single JSON
// object carrying the same uppercase keys as the ASCII stanza.
func ParseCommandJSON(raw, fetchedAs string) (*CommandRecord, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, fmt.Errorf("invalid JSON tldr response: %w", err)
	}
	fields := make(map[string]string, len(obj))
	for k, v := range obj {
		if s, ok := v.(string); ok {
			fields[k] = s
		}
	}
	return commandFromASCIIFields(fields, fetchedAs, raw), nil
}

func commandFromASCIIFields(fields map[string]string, fetchedAs, raw string) *CommandRecord {
	flags, dropped := ParseFlagEntries(fields["FLAGS"])
	return &CommandRecord{
		Name:            fields["CMD"],
		Purpose:         fields["PURPOSE"],
		InputsText:      fields["INPUTS"],
		OutputsText:     fields["OUTPUTS"],
		SideEffectsText: fields["SIDE_EFFECTS"],
		Flags:           flags,
		Examples:        splitList(fields["EXAMPLES"], "|"),
		Related:         splitList(fields["RELATED"], ","),
		SchemaJSON:      fields["SCHEMA_JSON"],
		FetchedAs:       fetchedAs,
		Raw:             strings.TrimRight(raw, "\n"),
		DroppedFlags:    dropped,
	}
}

// ParseFlagEntries decodes the semicolon-separated FLAGS field. Each entry
// must match --name=TYPE[=DEFAULT]|description; the type defaults to BOOL
// when omitted. Entries that fail the pattern are dropped from the flag list
// and returned verbatim so the validator can warn about them.
func ParseFlagEntries(s string) ([]FlagSpec, []string) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var flags []FlagSpec
	var dropped []string
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		signature, description, ok := strings.Cut(entry, "|")
		signature = strings.TrimSpace(signature)
		if !ok || !strings.HasPrefix(signature, "--") {
			dropped = append(dropped, entry)
			continue
		}

		parts := strings.SplitN(signature[2:], "=", 3)
		if parts[0] == "" {
			dropped = append(dropped, entry)
			continue
		}

		flag := FlagSpec{
			Name:        parts[0],
			Type:        "BOOL",
			Description: strings.TrimSpace(description),
		}
		if len(parts) > 1 && parts[1] != "" {
			flag.Type = parts[1]
		}
		if len(parts) > 2 {
			flag.Default = parts[2]
		}
		flags = append(flags, flag)
	}
	return flags, dropped
}

// splitList splits a delimited list field, trimming whitespace and dropping
// empty items.
func splitList(s, sep string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(s, sep) {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
