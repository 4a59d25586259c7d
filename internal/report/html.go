package report

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"

	"github.com/aidanlsb/tldrgen/internal/analyze"
	"github.com/aidanlsb/tldrgen/internal/tldr"
)

// HTML renders the visual report: overview metrics, coverage bars and the
// distribution/hierarchy/connectivity tables.
type HTML struct{}

func (HTML) Ext() string { return "html" }

type htmlData struct {
	Name       string
	Version    string
	Summary    string
	SpecVer    string
	Total      int
	Namespaces int
	TotalFlags int
	AvgFlags   float64
	Bars       []htmlBar
	FlagRows   []htmlFlagRow
	Groups     []htmlGroup
	Connected  []analyze.Connection
}

type htmlBar struct {
	Label   string
	Percent float64
	Count   int
	Total   int
}

type htmlFlagRow struct {
	Type    string
	Count   int
	Percent float64
}

type htmlGroup struct {
	Namespace string
	Commands  []string
	Count     int
}

func (HTML) Render(doc *tldr.Document, a *analyze.Analysis) ([]byte, error) {
	data := htmlData{
		Name:       placeholder(doc.ToolName, "(unnamed tool)"),
		Version:    placeholder(doc.Version, "?"),
		Summary:    doc.Summary,
		SpecVer:    SpecVersion,
		Total:      a.TotalCommands,
		Namespaces: len(a.Namespaces.Groups),
		TotalFlags: a.FlagTypes.Total,
		AvgFlags:   a.FlagTypes.AveragePerCommand,
		Bars: []htmlBar{
			{"Commands with examples", a.Coverage.ExamplesPct, a.Coverage.WithExamples, a.Coverage.Total},
			{"Commands with related links", a.Coverage.RelatedPct, a.Coverage.WithRelated, a.Coverage.Total},
			{"Commands with schema", a.Coverage.SchemaPct, a.Coverage.WithSchema, a.Coverage.Total},
			{"Commands with side effects", a.Coverage.SideEffectsPct, a.Coverage.WithSideEffects, a.Coverage.Total},
		},
		Connected: a.Graph.MostConnected,
	}

	for _, key := range analyze.SortedByCount(a.FlagTypes.Distribution) {
		count := a.FlagTypes.Distribution[key]
		pct := 0.0
		if a.FlagTypes.Total > 0 {
			pct = float64(count) / float64(a.FlagTypes.Total) * 100
		}
		data.FlagRows = append(data.FlagRows, htmlFlagRow{key, count, pct})
	}

	if len(a.Namespaces.TopLevel) > 0 {
		data.Groups = append(data.Groups, htmlGroup{"top-level", a.Namespaces.SortedTopLevel(), len(a.Namespaces.TopLevel)})
	}
	for _, prefix := range a.Namespaces.GroupNames() {
		data.Groups = append(data.Groups, htmlGroup{prefix, a.Namespaces.SortedGroup(prefix), len(a.Namespaces.Groups[prefix])})
	}
	// Largest groups first, like the original report.
	sort.SliceStable(data.Groups, func(i, j int) bool {
		return data.Groups[i].Count > data.Groups[j].Count
	})

	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering HTML report: %w", err)
	}
	return buf.Bytes(), nil
}

var htmlTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Name}} v{{.Version}} - TLDR Report</title>
<style>
body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; max-width: 1100px; margin: 0 auto; padding: 20px; background: #f5f5f5; }
.header { background: #3b3b58; color: white; padding: 28px; border-radius: 10px; margin-bottom: 24px; }
.header h1 { margin: 0; }
.section { background: white; padding: 22px; border-radius: 8px; margin-bottom: 18px; box-shadow: 0 2px 4px rgba(0,0,0,0.08); }
.section h2 { margin-top: 0; border-bottom: 2px solid #a78bfa; padding-bottom: 8px; }
.metric { display: inline-block; background: #f8f9fa; padding: 12px 18px; border-radius: 5px; margin: 8px 8px 8px 0; border-left: 4px solid #a78bfa; }
.metric .label { font-size: 0.8em; color: #666; text-transform: uppercase; }
.metric .value { font-size: 1.6em; font-weight: bold; }
.bar { height: 26px; background: #a78bfa; border-radius: 4px; margin: 4px 0 12px; color: white; padding: 0 8px; display: flex; align-items: center; }
table { width: 100%; border-collapse: collapse; margin-top: 12px; }
th, td { text-align: left; padding: 10px; border-bottom: 1px solid #e0e0e0; }
code { background: #f4f4f4; padding: 2px 5px; border-radius: 3px; }
</style>
</head>
<body>
<div class="header">
<h1>{{.Name}} v{{.Version}}</h1>
{{if .Summary}}<p>{{.Summary}}</p>{{end}}
<p>TLDR Spec: {{.SpecVer}}</p>
</div>

<div class="section">
<h2>Overview</h2>
<div class="metric"><div class="label">Total Commands</div><div class="value">{{.Total}}</div></div>
<div class="metric"><div class="label">Namespaces</div><div class="value">{{.Namespaces}}</div></div>
<div class="metric"><div class="label">Total Flags</div><div class="value">{{.TotalFlags}}</div></div>
<div class="metric"><div class="label">Avg Flags/Command</div><div class="value">{{printf "%.2f" .AvgFlags}}</div></div>
</div>

<div class="section">
<h2>Coverage</h2>
{{range .Bars}}
<div>{{.Label}}</div>
<div class="bar" style="width: {{printf "%.1f" .Percent}}%">{{printf "%.1f" .Percent}}% ({{.Count}}/{{.Total}})</div>
{{end}}
</div>

<div class="section">
<h2>Flag Type Distribution</h2>
<table>
<tr><th>Type</th><th>Count</th><th>Share</th></tr>
{{range .FlagRows}}<tr><td><code>{{.Type}}</code></td><td>{{.Count}}</td><td>{{printf "%.1f" .Percent}}%</td></tr>
{{end}}</table>
</div>

<div class="section">
<h2>Command Hierarchy</h2>
<table>
<tr><th>Namespace</th><th>Commands</th><th>Count</th></tr>
{{range .Groups}}<tr><td><strong>{{.Namespace}}</strong></td><td>{{range .Commands}}<code>{{.}}</code> {{end}}</td><td>{{.Count}}</td></tr>
{{end}}</table>
</div>

{{if .Connected}}
<div class="section">
<h2>Most Connected Commands</h2>
<table>
<tr><th>Command</th><th>Total</th><th>Outgoing</th><th>Incoming</th></tr>
{{range .Connected}}<tr><td><code>{{.Command}}</code></td><td><strong>{{.Centrality}}</strong></td><td>{{.Outgoing}}</td><td>{{.Incoming}}</td></tr>
{{end}}</table>
</div>
{{end}}
</body>
</html>
`))
