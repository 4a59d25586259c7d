package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/tldrgen/internal/analyze"
	"github.com/aidanlsb/tldrgen/internal/check"
	"github.com/aidanlsb/tldrgen/internal/probe"
	"github.com/aidanlsb/tldrgen/internal/report"
	"github.com/aidanlsb/tldrgen/internal/tldr"
	"github.com/aidanlsb/tldrgen/internal/ui"
)

var (
	genValidate  bool
	genAnalyze   bool
	genPreview   bool
	genMarkdown  bool
	genYAML      bool
	genHTML      bool
	genTLDRJSON  bool
	genOutputDir string
)

var generateCmd = &cobra.Command{
	Use:   "generate <cli>",
	Short: "Generate documentation artifacts for a TLDR-compliant CLI",
	Long: `Introspects the target CLI through its --tldr interface and writes
documentation artifacts next to the current directory (or --output-dir).

A text outline and a JSON structured dump are always written; --markdown,
--yaml and --html add further formats. With --validate only the compliance
report is printed, with --analyze only the analytics, with --preview the
markdown document is rendered to the terminal. None of these three write
files.

Examples:
  tldrgen generate forest
  tldrgen generate forest --validate
  tldrgen generate forest --analyze
  tldrgen generate forest --markdown --html
  tldrgen generate forest --preview`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]

		if err := probe.CheckAvailable(target); err != nil {
			return handleError(ErrCLINotFound, err,
				fmt.Sprintf("Make sure '%s' is installed and on PATH", target))
		}

		client := &probe.Client{
			CLI:      target,
			Runner:   probe.ExecRunner{Timeout: probeTimeout()},
			JSONMode: genTLDRJSON,
		}
		if !isJSONOutput() {
			client.Progress = func(command string, err error) {
				fmt.Println(ui.Warningf("failed to fetch tldr for command '%s': %v", command, err))
			}
		}

		start := time.Now()
		doc, err := client.Fetch(cmd.Context())
		if err != nil {
			var parseErr *tldr.ParseError
			if errors.As(err, &parseErr) {
				return handleError(ErrParseFailed, err, "")
			}
			return handleError(ErrProbeFailed, err, "")
		}

		result := check.Validate(doc)

		switch {
		case genValidate:
			return runValidateMode(target, doc, result)
		case genAnalyze:
			return runAnalyzeMode(doc, result)
		case genPreview:
			return runPreviewMode(doc)
		default:
			return runGenerateMode(target, doc, result, time.Since(start))
		}
	},
}

func init() {
	generateCmd.Flags().BoolVar(&genValidate, "validate", false, "Validate compliance only, write no files")
	generateCmd.Flags().BoolVar(&genAnalyze, "analyze", false, "Print analytics only, write no files")
	generateCmd.Flags().BoolVar(&genPreview, "preview", false, "Render the markdown document to the terminal")
	generateCmd.Flags().BoolVar(&genMarkdown, "markdown", false, "Also write a markdown artifact")
	generateCmd.Flags().BoolVar(&genYAML, "yaml", false, "Also write a YAML dump artifact")
	generateCmd.Flags().BoolVar(&genHTML, "html", false, "Also write an HTML report artifact")
	generateCmd.Flags().BoolVar(&genTLDRJSON, "tldr-json", false, "Probe per-command metadata with --tldr=json (ASCII format only)")
	generateCmd.Flags().StringVar(&genOutputDir, "output-dir", "", "Directory for generated artifacts (overrides config)")
	rootCmd.AddCommand(generateCmd)
}

func probeTimeout() time.Duration {
	if timeoutSeconds > 0 {
		return time.Duration(timeoutSeconds) * time.Second
	}
	return cfg.ProbeTimeout()
}

func topConnected() int {
	return cfg.TopConnected
}

func outputDir() string {
	if genOutputDir != "" {
		return genOutputDir
	}
	if cfg.OutputDir != "" {
		return cfg.OutputDir
	}
	return "."
}

// runGenerateMode writes the artifact files. Compliance errors abort before
// anything is written; warnings are surfaced and generation proceeds.
func runGenerateMode(target string, doc *tldr.Document, result *check.Report, elapsed time.Duration) error {
	if !result.Compliant() {
		if isJSONOutput() {
			outputError(ErrValidationFailed,
				fmt.Sprintf("'%s' has %d validation errors", target, len(result.Errors)),
				result, "Run with --validate for the full report")
			return errReported
		}
		printIssues(result)
		return fmt.Errorf("'%s' has validation errors, no artifacts written", target)
	}

	analysis := analyze.Analyze(doc, topConnected())

	renderers := []report.Renderer{report.Text{}, report.JSON{}}
	if genMarkdown {
		renderers = append(renderers, report.Markdown{})
	}
	if genYAML {
		renderers = append(renderers, report.YAML{})
	}
	if genHTML {
		renderers = append(renderers, report.HTML{})
	}

	var written []string
	for _, r := range renderers {
		body, err := r.Render(doc, analysis)
		if err != nil {
			return handleError(ErrRenderFailed, err, "")
		}
		path := filepath.Join(outputDir(), fmt.Sprintf("%s_tldr.%s", target, r.Ext()))
		if err := os.WriteFile(path, body, 0o644); err != nil {
			return handleError(ErrWriteFailed, err, "")
		}
		written = append(written, path)
	}

	if isJSONOutput() {
		outputSuccessWithWarnings(map[string]any{
			"tool":      doc.ToolName,
			"version":   doc.Version,
			"commands":  len(doc.Commands),
			"artifacts": written,
		}, issueWarnings(result), &Meta{Count: len(written), ElapsedMs: elapsed.Milliseconds()})
		return nil
	}

	for _, w := range result.Warnings {
		fmt.Println(ui.Warning(issueText(w)))
	}
	for _, path := range written {
		fmt.Println(ui.Successf("generated: %s", ui.Accent.Render(path)))
	}
	return nil
}

// runValidateMode prints the compliance summary and sets the exit code:
// zero iff the document has no errors and every declared command was
// reachable.
func runValidateMode(target string, doc *tldr.Document, result *check.Report) error {
	compliant := result.Compliant()

	if isJSONOutput() {
		data := map[string]any{
			"tool":               doc.ToolName,
			"version":            doc.Version,
			"format":             doc.Format.String(),
			"totalCommands":      len(doc.DeclaredCommands),
			"accessibleCommands": len(doc.Commands),
			"failedCommands":     len(doc.Unreachable),
			"errors":             result.Errors,
			"warnings":           result.Warnings,
			"compliant":          compliant,
		}
		if compliant {
			outputSuccess(data, nil)
			return nil
		}
		outputJSON(Response{OK: false, Data: data, Error: &ErrorInfo{
			Code:    ErrValidationFailed,
			Message: fmt.Sprintf("'%s' has validation failures", target),
		}})
		return errReported
	}

	rule := "=================================================="
	fmt.Println(rule)
	fmt.Println(ui.Header("VALIDATION SUMMARY"))
	fmt.Println(rule)
	fmt.Println(ui.Infof("CLI: %s v%s", doc.ToolName, doc.Version))
	fmt.Println(ui.Infof("Format: %s", doc.Format))
	fmt.Println(ui.Infof("Total commands: %d", len(doc.DeclaredCommands)))
	fmt.Println(ui.Successf("Accessible commands: %d", len(doc.Commands)))
	if len(doc.Unreachable) > 0 {
		fmt.Println(ui.Errorf("Failed commands: %d", len(doc.Unreachable)))
	}
	if len(result.Errors) > 0 {
		fmt.Println(ui.Errorf("Validation errors: %d", len(result.Errors)))
	}
	if len(result.Warnings) > 0 {
		fmt.Println(ui.Warningf("Validation warnings: %d", len(result.Warnings)))
	}

	if len(result.Errors) > 0 || len(result.Warnings) > 0 {
		fmt.Println()
		fmt.Println("Issues:")
		printIssues(result)
	}

	fmt.Println()
	if compliant {
		fmt.Println(ui.Successf("%s is TLDR compliant", doc.ToolName))
		return nil
	}
	fmt.Println(ui.Errorf("%s has validation failures", doc.ToolName))
	return errReported
}

// runAnalyzeMode prints the analytics report to the console, writing no files.
func runAnalyzeMode(doc *tldr.Document, result *check.Report) error {
	analysis := analyze.Analyze(doc, topConnected())

	if isJSONOutput() {
		outputSuccessWithWarnings(analysis, issueWarnings(result), &Meta{Count: len(doc.Commands)})
		return nil
	}

	rule := "=================================================="
	fmt.Println(rule)
	fmt.Println(ui.Header("ANALYTICS REPORT"))
	fmt.Println(rule)
	fmt.Printf("\nTotal commands: %d\n", analysis.TotalCommands)

	fmt.Println("\nCommand hierarchy:")
	fmt.Printf("  top-level: %d\n", len(analysis.Namespaces.TopLevel))
	for _, prefix := range analysis.Namespaces.GroupNames() {
		fmt.Printf("  %s: %d\n", prefix, len(analysis.Namespaces.Groups[prefix]))
	}

	fmt.Printf("\nFlag types (total %d, avg %.2f per command):\n",
		analysis.FlagTypes.Total, analysis.FlagTypes.AveragePerCommand)
	for _, key := range analyze.SortedByCount(analysis.FlagTypes.Distribution) {
		fmt.Printf("  %s: %d\n", key, analysis.FlagTypes.Distribution[key])
	}

	if analysis.SideEffects != nil {
		fmt.Printf("\nSide effects (%d tagged, %d untagged):\n",
			analysis.SideEffects.WithTags, analysis.SideEffects.WithoutTags)
		for _, tag := range analyze.SortedByCount(analysis.SideEffects.Distribution) {
			fmt.Printf("  %s: %d\n", tag, analysis.SideEffects.Distribution[tag])
		}
	}

	cov := analysis.Coverage
	fmt.Println("\nCoverage:")
	fmt.Printf("  examples: %.1f%% (%d/%d)\n", cov.ExamplesPct, cov.WithExamples, cov.Total)
	fmt.Printf("  related: %.1f%% (%d/%d)\n", cov.RelatedPct, cov.WithRelated, cov.Total)
	fmt.Printf("  side effects: %.1f%% (%d/%d)\n", cov.SideEffectsPct, cov.WithSideEffects, cov.Total)
	fmt.Printf("  flags: %.1f%% (%d/%d)\n", cov.FlagsPct, cov.WithFlags, cov.Total)

	if len(analysis.Graph.MostConnected) > 0 {
		fmt.Println("\nMost connected commands:")
		for _, conn := range analysis.Graph.MostConnected {
			fmt.Printf("  %s: %d connections (%d out, %d in)\n",
				ui.CommandName(conn.Command), conn.Centrality, conn.Outgoing, conn.Incoming)
		}
	}

	return nil
}

// runPreviewMode renders the markdown document to the terminal.
func runPreviewMode(doc *tldr.Document) error {
	analysis := analyze.Analyze(doc, topConnected())
	body, err := (report.Markdown{}).Render(doc, analysis)
	if err != nil {
		return handleError(ErrRenderFailed, err, "")
	}

	if !ui.IsTTY() {
		fmt.Print(string(body))
		return nil
	}

	rendered, err := ui.RenderMarkdown(string(body), ui.TermWidth())
	if err != nil {
		return handleError(ErrRenderFailed, err, "")
	}
	fmt.Print(rendered)
	return nil
}

func printIssues(result *check.Report) {
	for _, issue := range result.Errors {
		fmt.Println("  " + ui.Error(issueText(issue)))
	}
	for _, issue := range result.Warnings {
		fmt.Println("  " + ui.Warning(issueText(issue)))
	}
}

func issueText(issue check.Issue) string {
	if issue.Command == "" {
		return issue.Message
	}
	return fmt.Sprintf("%s: %s", issue.Command, issue.Message)
}

func issueWarnings(result *check.Report) []Warning {
	var warnings []Warning
	for _, issue := range result.Warnings {
		warnings = append(warnings, Warning{
			Code:    ErrValidationFailed,
			Message: issue.Message,
			Command: issue.Command,
		})
	}
	return warnings
}
