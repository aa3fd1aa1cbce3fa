package aitext

import (
	"regexp"
	"strings"
)

var numberedLineRe = regexp.MustCompile(`^\s*(?:\d+[.)]|\[\d+\])\s+\S`)

// SplitReferences separates a generated document into body text and a
// trailing bibliography block. The primary convention is the literal
// reference marker line; when the model omits it, a best-effort heuristic
// peels off the trailing run of numbered-list lines instead. This is
// boundary text processing over free-form output, kept apart from the
// deterministic draft logic on purpose.
func SplitReferences(out string) (body, references string) {
	if idx := strings.Index(out, ReferenceMarker); idx >= 0 {
		body = strings.TrimSpace(out[:idx])
		references = strings.TrimSpace(out[idx+len(ReferenceMarker):])
		return body, references
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	split := len(lines)
	for split > 0 {
		line := lines[split-1]
		if strings.TrimSpace(line) == "" || numberedLineRe.MatchString(line) {
			split--
			continue
		}
		break
	}
	tail := strings.TrimSpace(strings.Join(lines[split:], "\n"))
	if tail == "" {
		return strings.TrimSpace(out), ""
	}
	body = strings.TrimSpace(strings.Join(lines[:split], "\n"))
	return body, tail
}
