// Package module implements the line-oriented sgmodule format: parsing a
// source's text into sectioned lines and MITM hostnames, folding many
// parsed sources into one de-duplicated merge state, and rendering the
// merged result back to text.
//
// Sections are opened by [Name] headers. The MITM section is special: it
// is merged by hostname rather than by raw line, and per-source drop
// tokens never apply inside it. Everything else merges line by line with
// first-seen ordering across sources.
package module
