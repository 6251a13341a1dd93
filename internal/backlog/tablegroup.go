package backlog

import (
	"strings"

	"ticketflow/internal/textutil"
)

// parseTableGroup consumes a grouped-range block: a header covering an id
// range followed by a markdown table with ID, Description, and Action
// columns. The caller has already matched the header against groupHeaderRe.
func (p *Parser) parseTableGroup(lines []string, position int) *TableGroup {
	header := groupHeaderRe.FindStringSubmatch(strings.TrimSpace(lines[0]))
	group := &TableGroup{
		Type:       header[1],
		Title:      header[4],
		RangeStart: atoiOrZero(header[2]),
		RangeEnd:   atoiOrZero(header[3]),
	}

	end := len(lines)
	for i := 1; i < len(lines); i++ {
		if classifyLine(lines[i]) == lineSeparator {
			end = i
			break
		}
	}
	group.RawMarkdown = trimBlankEdges(strings.Join(lines[:end], "\n"))

	headerSeen := false
	for _, line := range lines[1:end] {
		trimmed := strings.TrimSpace(line)
		switch classifyLine(line) {
		case lineBoldLabel:
			m := boldLabelRe.FindStringSubmatch(trimmed)
			if m[1] == labelSeverity {
				if sm := severityRe.FindStringSubmatch(strings.TrimSpace(m[2])); sm != nil {
					group.Severity = Severity(sm[1])
				}
			}
		case lineTableRow:
			cells := splitTableRow(trimmed)
			switch {
			case isTableHeaderRow(cells):
				headerSeen = true
			case isTableAlignmentRow(cells):
			case len(cells) >= 3 && headerSeen:
				group.Rows = append(group.Rows, TableRow{
					ID:          cells[0],
					Description: cells[1],
					Action:      cells[2],
				})
			default:
				p.logger.Debug("malformed table row excluded", "group", group.Title, "row", trimmed)
			}
		}
	}
	return group
}

func splitTableRow(line string) []string {
	parts := strings.Split(strings.Trim(line, "|"), "|")
	cells := make([]string, len(parts))
	for i, part := range parts {
		cells[i] = strings.TrimSpace(part)
	}
	return cells
}

// isTableHeaderRow matches the fixed ID/Description/Action column order,
// case-insensitively and tolerant of locale punctuation around the names.
func isTableHeaderRow(cells []string) bool {
	if len(cells) < 3 {
		return false
	}
	return strings.Contains(textutil.Fold(cells[0]), "id") &&
		strings.Contains(textutil.Fold(cells[1]), "description") &&
		strings.Contains(textutil.Fold(cells[2]), "action")
}

func isTableAlignmentRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		if cell == "" || strings.Trim(cell, ":-") != "" {
			return false
		}
	}
	return true
}

func atoiOrZero(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
