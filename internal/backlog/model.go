package backlog

import "strings"

// Document is the parse result for a whole backlog file.
type Document struct {
	Header          string
	TableOfContents string
	Sections        []*Section
}

// Section is a named, ordered group of entries. ID reflects the section's
// position in the document (1-based), not a stored identity: reordering
// sections changes their displayed ids.
type Section struct {
	ID            string
	Title         string
	RawHeaderLine string
	Entries       []Entry
}

// Entry is one unit of a section body. Exactly one concrete type backs each
// entry; callers must type-switch rather than assume a ticket.
type Entry interface {
	entry()
}

func (*Item) entry()       {}
func (*TableGroup) entry() {}
func (*RawBlock) entry()   {}

// Origin records how an item's markdown text came to be, so the serializer
// can enforce the fidelity contract structurally.
type Origin int

const (
	// OriginSynthesized marks items built or edited programmatically; their
	// markdown is regenerated on demand.
	OriginSynthesized Origin = iota
	// OriginVerbatim marks items parsed from text and untouched since; their
	// markdown is the preserved source slice.
	OriginVerbatim
)

// Severity is the retained priority code of a ticket ("P1".."P4"). The
// human-readable suffix ("P1 - Haute") is dropped at parse time.
type Severity string

const (
	SeverityCritical Severity = "P1"
	SeverityHigh     Severity = "P2"
	SeverityMedium   Severity = "P3"
	SeverityLow      Severity = "P4"
)

// Item is one ticket: a type-prefixed identifier, a title, and the structured
// fields extracted from its block.
type Item struct {
	ID           string
	Type         string
	Title        string
	Emoji        string
	Component    string
	Module       string
	Severity     Severity
	Priority     string
	Effort       string
	Description  string
	UserStory    string
	Specs        []string
	Reproduction []string
	Criteria     []Criterion
	Dependencies []string
	Constraints  []string
	Screens      []string
	Screenshots  []Screenshot

	// RawMarkdown holds the exact source slice from the header line through
	// (not including) the terminating separator when Origin is
	// OriginVerbatim. It is empty for synthesized items.
	RawMarkdown string
	Origin      Origin

	// Position is the 0-based order of the entry inside its section.
	Position int
}

// MarkEdited switches the item to the synthesis path after a field change,
// discarding the preserved source text.
func (it *Item) MarkEdited() {
	it.Origin = OriginSynthesized
	it.RawMarkdown = ""
}

// Criterion is one acceptance-criteria checkbox.
type Criterion struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// Screenshot references a captured image attached to a ticket.
type Screenshot struct {
	Filename string `json:"filename"`
	Alt      string `json:"alt,omitempty"`
	AddedAt  int64  `json:"added_at"`
}

// TableGroup compresses several lightweight tickets into one header plus a
// markdown table. Rows are not full items and are exempt from the item
// id-uniqueness rule; range conformance is left to callers.
type TableGroup struct {
	Type        string
	Title       string
	Severity    Severity
	RangeStart  int
	RangeEnd    int
	Rows        []TableRow
	RawMarkdown string
}

// TableRow is one line of a grouped-range table.
type TableRow struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

// RawBlock preserves an opaque stretch of markdown verbatim: legend and
// roadmap sections, and any content the item grammar could not claim.
type RawBlock struct {
	Title       string
	RawMarkdown string
}

// typePrefix reports the uppercase type portion of a ticket id, or "" when
// the id does not follow the TYPE-NNN shape.
func typePrefix(id string) string {
	idx := strings.LastIndexByte(id, '-')
	if idx <= 0 {
		return ""
	}
	return id[:idx]
}
