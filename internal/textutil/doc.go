// Package textutil provides small text normalization helpers shared across
// the backlog engine and the CLI: accent-insensitive folding, anchor slugs
// for generated tables of contents, and filename sanitation for exports.
package textutil
