package assistant

import (
	"regexp"
	"strings"
)

// yearPattern matches a plausible publication year, as found in
// "(Author, 2021)" style references.
var yearPattern = regexp.MustCompile(`\b(19\d{2}|20[01]\d|202[0-4])\b`)

type detectedCitation struct {
	Text   string
	Source string
}

// detectCitations scans reply text for citation-looking lines: anything
// with parentheses and a publication year. A leading "Source:" style prefix
// becomes the source name.
func detectCitations(text string) []detectedCitation {
	var found []detectedCitation
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "(") || !strings.Contains(line, ")") {
			continue
		}
		if !yearPattern.MatchString(line) {
			continue
		}

		source := "Unknown Source"
		if idx := strings.Index(line, ":"); idx > 0 {
			source = strings.TrimSpace(line[:idx])
		}

		found = append(found, detectedCitation{
			Text:   strings.TrimSpace(line),
			Source: source,
		})
	}
	return found
}
