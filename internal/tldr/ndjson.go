package tldr

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError is a fatal wire-format violation. Line is 1-based; Content
// quotes the offending line when it helps locate the defect.
type ParseError struct {
	Line    int
	Content string
	Msg     string
}

func (e *ParseError) Error() string {
	if e.Content != "" {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Content)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Semantic field names a keymap can resolve to. Short keys that resolve to
// anything else, and unmapped keys that are not themselves semantic names,
// are ignored for forward compatibility.
const (
	fieldCommand     = "command"
	fieldPurpose     = "purpose"
	fieldInputs      = "inputs"
	fieldOutputs     = "outputs"
	fieldSideEffects = "side_effects"
	fieldFlags       = "flags"
	fieldExamples    = "examples"
	fieldRelated     = "related"
)

var semanticFields = map[string]bool{
	fieldCommand: true, fieldPurpose: true,
	fieldInputs: true, fieldOutputs: true,
	fieldSideEffects: true, fieldFlags: true,
	fieldExamples: true, fieldRelated: true,
}

// ParseNDJSON decodes a full v0.2 response: header line, meta line, then one
// JSON object per non-blank line. Unlike the ASCII parser this one fails
// hard on structural violations; NDJSON has no "ignore unknown syntax"
// fallback, so a bad line means a broken producer.
func ParseNDJSON(raw string) (*Document, error) {
	lines := strings.Split(strings.TrimRight(raw, "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}

	if len(lines) < 1 || !ndjsonHeaderRe.MatchString(lines[0]) {
		content := ""
		if len(lines) > 0 {
			content = lines[0]
		}
		return nil, &ParseError{Line: 1, Content: content, Msg: "missing tool header, expected --- tool: <name> ---"}
	}
	toolName := ndjsonHeaderRe.FindStringSubmatch(lines[0])[1]

	if len(lines) < 2 || !strings.HasPrefix(lines[1], "# meta:") {
		content := ""
		if len(lines) > 1 {
			content = lines[1]
		}
		return nil, &ParseError{Line: 2, Content: content, Msg: "missing meta line, expected # meta: tool=... version=... keymap={...}"}
	}

	meta, err := parseMetaLine(lines[1])
	if err != nil {
		return nil, err
	}

	doc := &Document{
		ToolName: toolName,
		Version:  meta.version,
		Format:   FormatNDJSON,
		Keymap:   meta.keymap,
	}

	for i := 2; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		var value any
		if err := json.Unmarshal([]byte(line), &value); err != nil {
			return nil, &ParseError{Line: i + 1, Msg: "invalid JSON command record"}
		}
		obj, ok := value.(map[string]any)
		if !ok {
			return nil, &ParseError{Line: i + 1, Msg: "command record must be a JSON object"}
		}

		rec := decodeRecord(obj, meta.keymap)
		rec.Raw = line
		doc.Commands = append(doc.Commands, rec)
		doc.DeclaredCommands = append(doc.DeclaredCommands, rec.Name)
	}

	return doc, nil
}

type ndjsonMeta struct {
	tool    string
	version string
	keymap  map[string]string
}

// parseMetaLine decodes "# meta: tool=demo, version=1.0, keymap={...}".
// Everything after "keymap=" belongs to the keymap object, which may itself
// contain commas.
func parseMetaLine(line string) (*ndjsonMeta, error) {
	body := strings.TrimSpace(strings.TrimPrefix(line, "# meta:"))

	meta := &ndjsonMeta{}
	rest := body
	if i := strings.Index(body, "keymap="); i >= 0 {
		keymapRaw := strings.TrimSpace(body[i+len("keymap="):])
		km, err := parseKeymap(keymapRaw)
		if err != nil {
			return nil, &ParseError{Line: 2, Content: keymapRaw, Msg: err.Error()}
		}
		meta.keymap = km
		rest = body[:i]
	}

	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), ","))
		if k, v, ok := strings.Cut(part, "="); ok {
			switch strings.TrimSpace(k) {
			case "tool":
				meta.tool = strings.TrimSpace(v)
			case "version":
				meta.version = strings.TrimSpace(v)
			}
		}
	}

	return meta, nil
}

// parseKeymap accepts the keymap object either as strict JSON or in the bare
// {short:long,short:long} shorthand producers commonly emit.
func parseKeymap(raw string) (map[string]string, error) {
	raw = strings.TrimSpace(raw)

	var km map[string]string
	if err := json.Unmarshal([]byte(raw), &km); err == nil {
		return km, nil
	}

	if !strings.HasPrefix(raw, "{") || !strings.HasSuffix(raw, "}") {
		return nil, fmt.Errorf("malformed keymap object")
	}
	inner := strings.TrimSpace(raw[1 : len(raw)-1])
	km = make(map[string]string)
	if inner == "" {
		return km, nil
	}
	for _, pair := range strings.Split(inner, ",") {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("malformed keymap entry %q", pair)
		}
		k = strings.Trim(strings.TrimSpace(k), `"`)
		v = strings.Trim(strings.TrimSpace(v), `"`)
		if k == "" || v == "" {
			return nil, fmt.Errorf("malformed keymap entry %q", pair)
		}
		km[k] = v
	}
	return km, nil
}

// decodeRecord maps one NDJSON object onto a CommandRecord through the
// keymap. Keys the keymap does not cover fall back to their own name when it
// is already a semantic field; anything else is ignored.
func decodeRecord(obj map[string]any, keymap map[string]string) *CommandRecord {
	rec := &CommandRecord{}
	for key, value := range obj {
		semantic, ok := keymap[key]
		if !ok {
			if !semanticFields[key] {
				continue
			}
			semantic = key
		}

		switch semantic {
		case fieldCommand:
			rec.Name = asString(value)
		case fieldPurpose:
			rec.Purpose = asString(value)
		case fieldInputs:
			rec.Inputs = asParams(value)
		case fieldOutputs:
			rec.Outputs = asParams(value)
		case fieldSideEffects:
			rec.SideEffects = asStrings(value)
		case fieldFlags:
			rec.Flags = asFlags(value)
		case fieldExamples:
			rec.Examples = asStrings(value)
		case fieldRelated:
			rec.Related = asStrings(value)
		}
	}
	return rec
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func asStrings(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range arr {
		if s := strings.TrimSpace(asString(item)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func asParams(v any) []Param {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	var params []Param
	for _, item := range arr {
		switch p := item.(type) {
		case string:
			params = append(params, Param{Name: p})
		case map[string]any:
			param := Param{
				Name: asString(p["name"]),
				Type: asString(p["type"]),
			}
			if req, ok := p["required"].(bool); ok {
				param.Required = req
			}
			if d, ok := p["default"]; ok && d != nil {
				param.Default = asString(d)
			}
			params = append(params, param)
		}
	}
	return params
}

func asFlags(v any) []FlagSpec {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	var flags []FlagSpec
	for _, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		flag := FlagSpec{
			Name:        asString(obj["name"]),
			Type:        asString(obj["type"]),
			Alias:       asString(obj["alias"]),
			Description: asString(obj["description"]),
		}
		if flag.Description == "" {
			flag.Description = asString(obj["desc"])
		}
		if d, ok := obj["default"]; ok && d != nil {
			flag.Default = asString(d)
		}
		flags = append(flags, flag)
	}
	return flags
}
