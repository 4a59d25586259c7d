// Package analyze derives read-only secondary structures from a Document:
// namespace categorization, the relatedness graph with degree centrality,
// and flag-type/side-effect/coverage distributions. All derivations are
// deterministic for a fixed Document, including tie-break order.
package analyze

import (
	"math"
	"sort"

	"github.com/aidanlsb/tldrgen/internal/tldr"
)

// DefaultTopConnected caps the most-connected ranking when no limit is
// configured.
const DefaultTopConnected = 10

// Analysis bundles every derived structure for one Document.
type Analysis struct {
	TotalCommands int             `json:"totalCommands" yaml:"totalCommands"`
	Namespaces    Namespaces      `json:"commandHierarchy" yaml:"commandHierarchy"`
	Graph         Graph           `json:"dependencyGraph" yaml:"dependencyGraph"`
	FlagTypes     FlagTypeStats   `json:"flagTypeDistribution" yaml:"flagTypeDistribution"`
	SideEffects   *SideEffectStat `json:"sideEffects,omitempty" yaml:"sideEffects,omitempty"`
	Coverage      Coverage        `json:"coverage" yaml:"coverage"`
}

// Namespaces partitions command names by the segment before the first dot.
// Every command lands in exactly one bucket; order inside each bucket is
// declaration order.
type Namespaces struct {
	TopLevel []string            `json:"topLevel" yaml:"topLevel"`
	Groups   map[string][]string `json:"namespaced" yaml:"namespaced"`
}

// GroupNames returns the namespace prefixes in lexicographic order, for
// deterministic rendering.
func (n Namespaces) GroupNames() []string {
	names := make([]string, 0, len(n.Groups))
	for name := range n.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortedGroup returns a lexicographically sorted copy of one group, leaving
// the declaration-ordered original intact.
func (n Namespaces) SortedGroup(prefix string) []string {
	group := append([]string(nil), n.Groups[prefix]...)
	sort.Strings(group)
	return group
}

// SortedTopLevel returns a lexicographically sorted copy of TopLevel.
func (n Namespaces) SortedTopLevel() []string {
	top := append([]string(nil), n.TopLevel...)
	sort.Strings(top)
	return top
}

// Graph is the relatedness graph built from every command's related list.
// Edges may point at names absent from the Document; they are kept as
// written.
type Graph struct {
	Outgoing   map[string][]string `json:"outgoing" yaml:"outgoing"`
	Incoming   map[string][]string `json:"incoming" yaml:"incoming"`
	Centrality map[string]int      `json:"centrality" yaml:"centrality"`

	// MostConnected ranks commands by descending centrality, ties broken by
	// declaration order. Zero-centrality commands are excluded.
	MostConnected []Connection `json:"mostConnected" yaml:"mostConnected"`
}

// Connection is one entry of the most-connected ranking.
type Connection struct {
	Command    string `json:"command" yaml:"command"`
	Centrality int    `json:"centrality" yaml:"centrality"`
	Outgoing   int    `json:"outgoing" yaml:"outgoing"`
	Incoming   int    `json:"incoming" yaml:"incoming"`
}

// FlagTypeStats tabulates flag types across all commands. Types outside the
// recommended vocabulary are counted under "unknown".
type FlagTypeStats struct {
	Distribution      map[string]int `json:"distribution" yaml:"distribution"`
	Total             int            `json:"total" yaml:"total"`
	AveragePerCommand float64        `json:"averagePerCommand" yaml:"averagePerCommand"`
	MostCommon        string         `json:"mostCommonType,omitempty" yaml:"mostCommonType,omitempty"`
}

// SideEffectStat tabulates domain:operation tags. Only meaningful for the
// NDJSON format; ASCII side effects are free text.
type SideEffectStat struct {
	Distribution map[string]int `json:"distribution" yaml:"distribution"`
	WithTags     int            `json:"commandsWithTags" yaml:"commandsWithTags"`
	WithoutTags  int            `json:"commandsWithoutTags" yaml:"commandsWithoutTags"`
}

// Coverage measures how many commands carry each optional section.
type Coverage struct {
	Total           int     `json:"total" yaml:"total"`
	WithExamples    int     `json:"withExamples" yaml:"withExamples"`
	WithRelated     int     `json:"withRelated" yaml:"withRelated"`
	WithSchema      int     `json:"withSchema" yaml:"withSchema"`
	WithSideEffects int     `json:"withSideEffects" yaml:"withSideEffects"`
	WithFlags       int     `json:"withFlags" yaml:"withFlags"`
	ExamplesPct     float64 `json:"withExamplesPercent" yaml:"withExamplesPercent"`
	RelatedPct      float64 `json:"withRelatedPercent" yaml:"withRelatedPercent"`
	SchemaPct       float64 `json:"withSchemaPercent" yaml:"withSchemaPercent"`
	SideEffectsPct  float64 `json:"withSideEffectsPercent" yaml:"withSideEffectsPercent"`
	FlagsPct        float64 `json:"withFlagsPercent" yaml:"withFlagsPercent"`
}

// Analyze derives the full Analysis for doc. topConnected caps the
// most-connected ranking; values <= 0 fall back to DefaultTopConnected.
func Analyze(doc *tldr.Document, topConnected int) *Analysis {
	if topConnected <= 0 {
		topConnected = DefaultTopConnected
	}
	sideEffects := (*SideEffectStat)(nil)
	if doc.Format == tldr.FormatNDJSON {
		sideEffects = sideEffectStats(doc.Commands)
	}
	return &Analysis{
		TotalCommands: len(doc.Commands),
		Namespaces:    categorize(doc.Commands),
		Graph:         buildGraph(doc.Commands, topConnected),
		FlagTypes:     flagTypeStats(doc.Commands),
		SideEffects:   sideEffects,
		Coverage:      coverage(doc.Commands),
	}
}

func categorize(commands []*tldr.CommandRecord) Namespaces {
	ns := Namespaces{Groups: make(map[string][]string)}
	for _, rec := range commands {
		prefix := tldr.Namespace(rec.Name)
		if prefix == "" {
			ns.TopLevel = append(ns.TopLevel, rec.Name)
			continue
		}
		ns.Groups[prefix] = append(ns.Groups[prefix], rec.Name)
	}
	return ns
}

func buildGraph(commands []*tldr.CommandRecord, top int) Graph {
	g := Graph{
		Outgoing:   make(map[string][]string, len(commands)),
		Incoming:   make(map[string][]string),
		Centrality: make(map[string]int, len(commands)),
	}

	for _, rec := range commands {
		g.Outgoing[rec.Name] = append([]string(nil), rec.Related...)
		for _, target := range rec.Related {
			g.Incoming[target] = append(g.Incoming[target], rec.Name)
		}
	}

	connections := make([]Connection, 0, len(commands))
	seen := make(map[string]bool, len(commands))
	for _, rec := range commands {
		if seen[rec.Name] {
			continue
		}
		seen[rec.Name] = true

		out := len(g.Outgoing[rec.Name])
		in := len(g.Incoming[rec.Name])
		g.Centrality[rec.Name] = out + in
		connections = append(connections, Connection{
			Command:    rec.Name,
			Centrality: out + in,
			Outgoing:   out,
			Incoming:   in,
		})
	}

	// Stable sort keeps declaration order for equal centrality.
	sort.SliceStable(connections, func(i, j int) bool {
		return connections[i].Centrality > connections[j].Centrality
	})

	for _, conn := range connections {
		if conn.Centrality == 0 || len(g.MostConnected) == top {
			break
		}
		g.MostConnected = append(g.MostConnected, conn)
	}

	return g
}

func flagTypeStats(commands []*tldr.CommandRecord) FlagTypeStats {
	stats := FlagTypeStats{Distribution: make(map[string]int)}
	for _, rec := range commands {
		stats.Total += len(rec.Flags)
		for _, flag := range rec.Flags {
			key := flag.Type
			if !tldr.KnownFlagType(key) {
				key = "unknown"
			}
			stats.Distribution[key]++
		}
	}

	if len(commands) > 0 {
		stats.AveragePerCommand = round2(float64(stats.Total) / float64(len(commands)))
	}

	best := 0
	for _, key := range sortedKeys(stats.Distribution) {
		if stats.Distribution[key] > best {
			best = stats.Distribution[key]
			stats.MostCommon = key
		}
	}
	return stats
}

func sideEffectStats(commands []*tldr.CommandRecord) *SideEffectStat {
	stats := &SideEffectStat{Distribution: make(map[string]int)}
	for _, rec := range commands {
		if len(rec.SideEffects) == 0 {
			stats.WithoutTags++
			continue
		}
		stats.WithTags++
		for _, tag := range rec.SideEffects {
			stats.Distribution[tag]++
		}
	}
	return stats
}

func coverage(commands []*tldr.CommandRecord) Coverage {
	cov := Coverage{Total: len(commands)}
	for _, rec := range commands {
		if len(rec.Examples) > 0 {
			cov.WithExamples++
		}
		if len(rec.Related) > 0 {
			cov.WithRelated++
		}
		if rec.SchemaJSON != "" {
			cov.WithSchema++
		}
		if rec.SideEffectsText != "" || len(rec.SideEffects) > 0 {
			cov.WithSideEffects++
		}
		if len(rec.Flags) > 0 {
			cov.WithFlags++
		}
	}
	cov.ExamplesPct = percent(cov.WithExamples, cov.Total)
	cov.RelatedPct = percent(cov.WithRelated, cov.Total)
	cov.SchemaPct = percent(cov.WithSchema, cov.Total)
	cov.SideEffectsPct = percent(cov.WithSideEffects, cov.Total)
	cov.FlagsPct = percent(cov.WithFlags, cov.Total)
	return cov
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(total)*1000) / 10
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sortedKeys gives a deterministic iteration order over a count map.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortedByCount returns map keys ordered by descending count, ties by name.
// Shared by the console and file renderers.
func SortedByCount(m map[string]int) []string {
	keys := sortedKeys(m)
	sort.SliceStable(keys, func(i, j int) bool {
		return m[keys[i]] > m[keys[j]]
	})
	return keys
}
