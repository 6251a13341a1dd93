package backlog

import (
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Parser turns backlog markdown into a Document. It performs no I/O and
// keeps no state between calls; a single Parser may be shared across
// goroutines parsing independent documents.
type Parser struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewParser returns a parser that reports field-level anomalies on logger.
// A nil logger discards them.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Parser{logger: logger, now: time.Now}
}

// Parse is a convenience for one-off parsing without anomaly logging.
func Parse(text string) *Document {
	return NewParser(nil).Parse(text)
}

// Parse produces the structured document for a complete backlog text. It
// never fails: an empty input yields an empty document and unclaimable
// content is preserved as raw entries.
func (p *Parser) Parse(text string) *Document {
	parts := splitDocument(text)
	doc := &Document{
		Header:          parts.header,
		TableOfContents: parts.toc,
		Sections:        make([]*Section, 0, len(parts.sections)),
	}

	for i, raw := range parts.sections {
		section := &Section{
			ID:            strconv.Itoa(i + 1),
			Title:         raw.title,
			RawHeaderLine: raw.headerLine,
		}
		if isRawSectionTitle(raw.title) {
			section.Entries = []Entry{&RawBlock{
				Title:       raw.title,
				RawMarkdown: trimBlankEdges(raw.body),
			}}
		} else {
			p.parseEntries(raw, section)
		}
		doc.Sections = append(doc.Sections, section)
	}
	return doc
}

// ParseItemBlock parses a single ticket block (header line through an
// optional trailing separator) outside of any document. It reports false
// when the first line is not a ticket header.
func (p *Parser) ParseItemBlock(text string) (*Item, bool) {
	lines := splitLines(trimBlankEdges(text))
	if len(lines) == 0 || !itemHeaderRe.MatchString(strings.TrimSpace(lines[0])) {
		return nil, false
	}
	return p.parseItem(lines, 0), true
}

// parseEntries scans a section body for ticket and grouped-range headers in
// source order. Content the grammar cannot claim (text before the first
// header, residue after a block's separator, unrecognized level-3 headers)
// becomes RawBlock entries so the document round-trips without loss.
func (p *Parser) parseEntries(raw rawSection, section *Section) {
	lines := splitLines(raw.body)

	var headerIdx []int
	for i, line := range lines {
		if classifyLine(line) == lineHeader3 {
			headerIdx = append(headerIdx, i)
		}
	}

	leadingEnd := len(lines)
	if len(headerIdx) > 0 {
		leadingEnd = headerIdx[0]
	}
	p.appendResidue(section, raw.title, lines[:leadingEnd])

	for blockNum, start := range headerIdx {
		end := len(lines)
		if blockNum+1 < len(headerIdx) {
			end = headerIdx[blockNum+1]
		}
		block := lines[start:end]
		header := strings.TrimSpace(block[0])

		switch {
		case groupHeaderRe.MatchString(header):
			group := p.parseTableGroup(block, len(section.Entries))
			section.Entries = append(section.Entries, group)
			p.appendResidue(section, raw.title, blockResidue(block))
		case itemHeaderRe.MatchString(header):
			item := p.parseItem(block, len(section.Entries))
			section.Entries = append(section.Entries, item)
			p.appendResidue(section, raw.title, blockResidue(block))
		default:
			p.logger.Debug("unrecognized block header preserved as raw", "section", raw.title, "header", header)
			p.appendResidue(section, raw.title, block)
		}
	}
}

// blockResidue returns the lines that follow a block's terminating
// separator. In a well-formed document this is empty.
func blockResidue(block []string) []string {
	for i := 1; i < len(block); i++ {
		if classifyLine(block[i]) == lineSeparator {
			return block[i+1:]
		}
	}
	return nil
}

// appendResidue preserves stranded content as a RawBlock entry. Lines that
// are only blanks and separators are the normal inter-block spacing and are
// not preserved.
func (p *Parser) appendResidue(section *Section, title string, lines []string) {
	meaningful := false
	for _, line := range lines {
		kind := classifyLine(line)
		if kind != lineBlank && kind != lineSeparator {
			meaningful = true
			break
		}
	}
	if !meaningful {
		return
	}
	section.Entries = append(section.Entries, &RawBlock{
		Title:       title,
		RawMarkdown: trimBlankEdges(strings.Join(lines, "\n")),
	})
}
