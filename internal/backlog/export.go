package backlog

import (
	"fmt"
	"strings"

	"ticketflow/internal/textutil"
)

// Export reassembles the full document: preamble, a regenerated table of
// contents, then every section with its entries in order. It never re-parses;
// per-ticket text comes from Item.Markdown.
func Export(doc *Document) string {
	return exportSections(doc, doc.Sections)
}

// ExportSections emits only the sections whose id is in ids; others are
// skipped entirely, without placeholders.
func ExportSections(doc *Document, ids ...string) string {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var sections []*Section
	for _, section := range doc.Sections {
		if _, ok := wanted[section.ID]; ok {
			sections = append(sections, section)
		}
	}
	return exportSections(doc, sections)
}

// ExportTypes ignores the section structure and emits one synthetic section
// per requested type, containing the de-duplicated tickets of that type.
func ExportTypes(doc *Document, types ...string) string {
	var b strings.Builder
	for _, typePrefix := range types {
		fmt.Fprintf(&b, "## %s\n\n", typePrefix)
		for _, item := range ItemsByType(doc, typePrefix) {
			b.WriteString(item.Markdown())
			b.WriteString("\n\n")
			b.WriteString(separatorLine)
			b.WriteString("\n\n")
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func exportSections(doc *Document, sections []*Section) string {
	var b strings.Builder

	if doc.Header != "" {
		b.WriteString(doc.Header)
		b.WriteString("\n\n")
	}
	if len(sections) > 0 {
		b.WriteString(tocMarker)
		b.WriteByte('\n')
		for _, section := range sections {
			heading := sectionHeading(section)
			fmt.Fprintf(&b, "- [%s](#%s)\n", heading, textutil.Slug(heading))
		}
		b.WriteByte('\n')
	}

	for _, section := range sections {
		b.WriteString(sectionHeaderLine(section))
		b.WriteString("\n\n")
		for _, entry := range section.Entries {
			switch e := entry.(type) {
			case *Item:
				b.WriteString(e.Markdown())
				b.WriteString("\n\n")
				b.WriteString(separatorLine)
				b.WriteString("\n\n")
			case *TableGroup:
				b.WriteString(e.Markdown())
				b.WriteString("\n\n")
				b.WriteString(separatorLine)
				b.WriteString("\n\n")
			case *RawBlock:
				if e.RawMarkdown != "" {
					b.WriteString(e.RawMarkdown)
					b.WriteString("\n\n")
				}
			}
		}
	}

	if b.Len() == 0 {
		return ""
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func sectionHeaderLine(section *Section) string {
	if section.RawHeaderLine != "" {
		return section.RawHeaderLine
	}
	return "## " + sectionHeading(section)
}

func sectionHeading(section *Section) string {
	if section.RawHeaderLine != "" {
		return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(section.RawHeaderLine), "##"))
	}
	return section.ID + ". " + section.Title
}
