// Package backlog implements the Ticketflow document engine: parsing the
// human-edited backlog markdown into structured tickets and serializing them
// back.
//
// The grammar is line-oriented. A document is a preamble (free text plus an
// optional table-of-contents block), followed by sections introduced by
// level-2 headers. Section bodies contain ticket blocks introduced by level-3
// headers of the form "### TYPE-NNN | Title", grouped-range blocks whose
// header spans an id range and whose body is a markdown table, and opaque
// bodies (legend, roadmap, conventions) that are never decomposed.
//
// The engine guarantees two laws for tickets: an unmodified parsed ticket
// re-serializes to its exact source bytes, and a synthesized ticket re-parses
// to an equivalent value. Parsing never fails; structurally ambiguous content
// is preserved as raw entries and field-level problems are logged and
// skipped.
//
// All functions are pure over their inputs: no I/O, no shared state, safe for
// concurrent use on independent documents.
package backlog
