package backlog

import (
	"regexp"
	"strings"
)

// lineKind classifies one physical line of the document. Classification is
// kept separate from handling so the parser's recovery behavior can be tested
// against line kinds directly.
type lineKind int

const (
	lineBlank lineKind = iota
	lineSeparator
	lineHeader2
	lineHeader3
	lineBoldLabel
	lineCheckbox
	lineBullet
	lineNumbered
	lineQuote
	lineImage
	lineTableRow
	lineText
)

var (
	separatorRe = regexp.MustCompile(`^\s*-{3,}\s*$`)
	header2Re   = regexp.MustCompile(`^##\s+\S`)
	header3Re   = regexp.MustCompile(`^###\s+\S`)
	boldLabelRe = regexp.MustCompile(`^\*\*([^*:]+?)\s*:\*\*\s*(.*)$`)
	checkboxRe  = regexp.MustCompile(`^-\s+\[( |[xX])\]\s+(.*)$`)
	bulletRe    = regexp.MustCompile(`^[-*]\s+(.*)$`)
	numberedRe  = regexp.MustCompile(`^\d+[.)]\s+(.*)$`)
	imageRe     = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)]+)\)\s*$`)

	// A separator accidentally fused to the next section header on one line.
	fusedHeaderRe = regexp.MustCompile(`(?m)^(-{3,})\s*(##\s+\S.*)$`)
)

func classifyLine(s string) lineKind {
	trimmed := strings.TrimSpace(s)
	switch {
	case trimmed == "":
		return lineBlank
	case separatorRe.MatchString(s):
		return lineSeparator
	case strings.HasPrefix(trimmed, "### "):
		if header3Re.MatchString(trimmed) {
			return lineHeader3
		}
		return lineText
	case strings.HasPrefix(trimmed, "## "):
		if header2Re.MatchString(trimmed) {
			return lineHeader2
		}
		return lineText
	case boldLabelRe.MatchString(trimmed):
		return lineBoldLabel
	case checkboxRe.MatchString(trimmed):
		return lineCheckbox
	case imageRe.MatchString(trimmed):
		return lineImage
	case bulletRe.MatchString(trimmed):
		return lineBullet
	case numberedRe.MatchString(trimmed):
		return lineNumbered
	case strings.HasPrefix(trimmed, ">"):
		return lineQuote
	case strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|"):
		return lineTableRow
	default:
		return lineText
	}
}

// splitLines breaks text into physical lines without the trailing newline
// characters. CRLF input is tolerated.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
