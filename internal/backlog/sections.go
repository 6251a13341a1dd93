package backlog

import (
	"regexp"
	"strings"

	"ticketflow/internal/textutil"
)

// tocMarker introduces the table-of-contents block inside the preamble.
const tocMarker = "**Table des matières**"

// rawSectionKeywords mark section titles whose bodies are preserved verbatim
// instead of being decomposed into tickets. Matching is case- and
// accent-insensitive on the folded title.
var rawSectionKeywords = []string{"legende", "roadmap", "convention"}

var sectionNumberRe = regexp.MustCompile(`^(?:\d+[.)]\s*)+`)

// rawSection is one level-2 chunk of the document before entry parsing.
type rawSection struct {
	headerLine string
	title      string
	body       string
}

type documentParts struct {
	header   string
	toc      string
	sections []rawSection
}

// splitDocument divides the whole text into preamble and level-2 sections.
// Fused separator+header lines ("---## Title") are normalized into two lines
// first, so they split identically to well-formed input.
func splitDocument(text string) documentParts {
	text = fusedHeaderRe.ReplaceAllString(text, "$1\n$2")
	lines := splitLines(text)

	var parts documentParts
	var preamble []string
	i := 0
	for ; i < len(lines); i++ {
		if classifyLine(lines[i]) == lineHeader2 {
			break
		}
		preamble = append(preamble, lines[i])
	}
	parts.header, parts.toc = extractTOC(preamble)

	for i < len(lines) {
		headerLine := lines[i]
		i++
		var body []string
		for i < len(lines) && classifyLine(lines[i]) != lineHeader2 {
			body = append(body, lines[i])
			i++
		}
		parts.sections = append(parts.sections, rawSection{
			headerLine: headerLine,
			title:      sectionTitle(headerLine),
			body:       strings.Join(body, "\n"),
		})
	}
	return parts
}

// sectionTitle strips the header token and any leading ordinal numbering.
// The numeral in the source is decorative; section ids are positional.
func sectionTitle(headerLine string) string {
	title := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(headerLine), "##"))
	title = sectionNumberRe.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}

// isRawSectionTitle reports whether a section body must be kept opaque.
func isRawSectionTitle(title string) bool {
	folded := textutil.Fold(title)
	for _, keyword := range rawSectionKeywords {
		if strings.Contains(folded, keyword) {
			return true
		}
	}
	return false
}

// extractTOC pulls the table-of-contents block out of the preamble lines. The
// block starts at the marker heading and extends over the following list
// lines; everything else becomes the document header.
func extractTOC(lines []string) (header, toc string) {
	markerIdx := -1
	for i, l := range lines {
		if isTOCMarker(l) {
			markerIdx = i
			break
		}
	}
	if markerIdx == -1 {
		return trimTrailingBlank(lines), ""
	}

	end := markerIdx + 1
	lastContent := markerIdx
	for end < len(lines) {
		switch classifyLine(lines[end]) {
		case lineBullet, lineNumbered, lineCheckbox:
			lastContent = end
		case lineBlank:
			// blanks inside the block are tolerated
		default:
			end = len(lines)
			continue
		}
		end++
	}

	tocLines := lines[markerIdx : lastContent+1]
	rest := append(append([]string{}, lines[:markerIdx]...), lines[lastContent+1:]...)
	return trimTrailingBlank(rest), strings.Join(tocLines, "\n")
}

func isTOCMarker(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "**") || !strings.HasSuffix(trimmed, "**") || len(trimmed) < 5 {
		return false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, "**"), "**")
	return textutil.Fold(inner) == "table des matieres"
}

func trimTrailingBlank(lines []string) string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	start := 0
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	return strings.Join(lines[start:end], "\n")
}
