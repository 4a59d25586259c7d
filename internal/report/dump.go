package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/tldrgen/internal/analyze"
	"github.com/aidanlsb/tldrgen/internal/tldr"
)

// JSON renders the structured dump. The dump is the only artifact the tool
// guarantees to be re-consumable: LoadDump restores the Document with
// identical command order and content.
type JSON struct {
	// Now overrides the generation timestamp; nil uses time.Now.
	Now func() time.Time
}

func (JSON) Ext() string { return "json" }

func (r JSON) Render(doc *tldr.Document, a *analyze.Analysis) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDump(doc, a, r.now())); err != nil {
		return nil, fmt.Errorf("encoding dump: %w", err)
	}
	return buf.Bytes(), nil
}

func (r JSON) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// LoadDump parses a JSON structured dump back into the Document it was
// generated from. Embedded analytics are dropped; they are derived data.
func LoadDump(data []byte) (*tldr.Document, error) {
	var d Dump
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing dump: %w", err)
	}
	return documentFromDump(&d), nil
}

// YAML renders the same dump structure as YAML.
type YAML struct {
	Now func() time.Time
}

func (YAML) Ext() string { return "yaml" }

func (r YAML) Render(doc *tldr.Document, a *analyze.Analysis) ([]byte, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	out, err := yaml.Marshal(NewDump(doc, a, now()))
	if err != nil {
		return nil, fmt.Errorf("encoding dump: %w", err)
	}
	return out, nil
}
