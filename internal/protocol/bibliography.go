package protocol

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	citationRe = regexp.MustCompile(`\[(\d+)\]`)
	refLineRe  = regexp.MustCompile(`^\s*(?:(\d+)[.)]|\[(\d+)\])\s+(.*)$`)
)

// AppendReferences merges a freshly generated body and reference block into
// an existing bibliography. In-text [k] markers in the body are shifted past
// the existing entries and the new reference lines are renumbered to continue
// the list, so citation numbers stay globally unique and monotonically
// increasing across repeated generation calls.
func AppendReferences(bibliography, body, references string) (newBody, newBibliography string) {
	offset := highestReferenceNumber(bibliography)

	newBody = citationRe.ReplaceAllStringFunc(body, func(m string) string {
		sub := citationRe.FindStringSubmatch(m)
		k, err := strconv.Atoi(sub[1])
		if err != nil {
			return m
		}
		return fmt.Sprintf("[%d]", k+offset)
	})

	var renumbered []string
	next := offset
	for _, line := range strings.Split(references, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		next++
		if m := refLineRe.FindStringSubmatch(line); m != nil {
			renumbered = append(renumbered, fmt.Sprintf("%d. %s", next, strings.TrimSpace(m[3])))
		} else {
			renumbered = append(renumbered, fmt.Sprintf("%d. %s", next, strings.TrimSpace(line)))
		}
	}
	if len(renumbered) == 0 {
		return newBody, bibliography
	}

	newBibliography = strings.TrimRight(bibliography, "\n")
	if newBibliography != "" {
		newBibliography += "\n"
	}
	newBibliography += strings.Join(renumbered, "\n")
	return newBody, newBibliography
}

// highestReferenceNumber scans an existing bibliography for numbered entry
// lines ("1. ", "1) " or "[1] ") and returns the largest number found.
func highestReferenceNumber(bibliography string) int {
	max := 0
	for _, line := range strings.Split(bibliography, "\n") {
		m := refLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		numText := m[1]
		if numText == "" {
			numText = m[2]
		}
		n, err := strconv.Atoi(numText)
		if err == nil && n > max {
			max = n
		}
	}
	return max
}
