package tldr

import (
	"regexp"
	"strings"
)

// ndjsonHeaderRe matches the first line of a v0.2 response and captures the
// tool name, e.g. "--- tool: forest ---".
var ndjsonHeaderRe = regexp.MustCompile(`^---\s+tool:\s+(.+?)\s+---$`)

// DetectFormat sniffs the wire format from the first line of raw output.
// Anything that does not carry the NDJSON header is treated as the ASCII
// format, whose parser ignores unrecognized lines.
func DetectFormat(raw string) Format {
	first := raw
	if i := strings.IndexByte(raw, '\n'); i >= 0 {
		first = raw[:i]
	}
	first = strings.TrimRight(first, "\r")
	if ndjsonHeaderRe.MatchString(first) {
		return FormatNDJSON
	}
	return FormatASCII
}
