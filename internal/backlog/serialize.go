package backlog

import (
	"fmt"
	"strings"
)

// separatorLine terminates every ticket block and section in the document
// grammar.
const separatorLine = "---"

// Markdown returns the ticket's text. Parsed, unmodified tickets reproduce
// their source bytes exactly; synthesized tickets are regenerated in
// canonical field order and re-parse to an equivalent value.
func (it *Item) Markdown() string {
	if it.Origin == OriginVerbatim && it.RawMarkdown != "" {
		return it.RawMarkdown
	}
	return it.synthesize()
}

func (it *Item) synthesize() string {
	var b strings.Builder

	b.WriteString("### ")
	b.WriteString(it.ID)
	b.WriteString(" | ")
	if it.Emoji != "" {
		b.WriteString(it.Emoji)
		b.WriteByte(' ')
	}
	b.WriteString(it.Title)
	b.WriteByte('\n')

	// Only populated metadata produces a line; an empty field never emits an
	// empty-valued label.
	metadata := []struct {
		label string
		value string
	}{
		{labelComponent, it.Component},
		{labelModule, it.Module},
		{labelSeverity, string(it.Severity)},
		{labelPriority, it.Priority},
		{labelEffort, it.Effort},
	}
	wroteMetadata := false
	for _, field := range metadata {
		if field.value == "" {
			continue
		}
		if !wroteMetadata {
			b.WriteByte('\n')
			wroteMetadata = true
		}
		fmt.Fprintf(&b, "**%s:** %s\n", field.label, field.value)
	}

	if it.Description != "" {
		b.WriteByte('\n')
		b.WriteString(it.Description)
		b.WriteByte('\n')
	}
	if it.UserStory != "" {
		b.WriteByte('\n')
		b.WriteString("> ")
		b.WriteString(it.UserStory)
		b.WriteByte('\n')
	}

	writeBulletSection(&b, "Spécifications", it.Specs)
	writeNumberedSection(&b, "Reproduction", it.Reproduction)
	if len(it.Criteria) > 0 {
		fmt.Fprintf(&b, "\n**%s:**\n", "Critères d'acceptation")
		for _, criterion := range it.Criteria {
			mark := " "
			if criterion.Checked {
				mark = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s\n", mark, criterion.Text)
		}
	}
	writeBulletSection(&b, "Dépendances", it.Dependencies)
	writeBulletSection(&b, "Contraintes", it.Constraints)
	writeBulletSection(&b, "Écrans", it.Screens)
	if len(it.Screenshots) > 0 {
		fmt.Fprintf(&b, "\n**%s:**\n", "Captures d'écran")
		for _, shot := range it.Screenshots {
			fmt.Fprintf(&b, "![%s](%s)\n", shot.Alt, shot.Filename)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeBulletSection(b *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(b, "\n**%s:**\n", label)
	for _, value := range values {
		b.WriteString("- ")
		b.WriteString(value)
		b.WriteByte('\n')
	}
}

func writeNumberedSection(b *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(b, "\n**%s:**\n", label)
	for i, value := range values {
		fmt.Fprintf(b, "%d. %s\n", i+1, value)
	}
}

// Markdown returns the grouped-range block's text: the preserved source when
// available, a regenerated header plus table otherwise.
func (g *TableGroup) Markdown() string {
	if g.RawMarkdown != "" {
		return g.RawMarkdown
	}
	var b strings.Builder
	fmt.Fprintf(&b, "### %s-%03d à %03d | %s\n", g.Type, g.RangeStart, g.RangeEnd, g.Title)
	if g.Severity != "" {
		fmt.Fprintf(&b, "\n**%s:** %s\n", labelSeverity, g.Severity)
	}
	b.WriteString("\n| ID | Description | Action |\n|---|---|---|\n")
	for _, row := range g.Rows {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", row.ID, row.Description, row.Action)
	}
	return strings.TrimRight(b.String(), "\n")
}
