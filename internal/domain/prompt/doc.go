// Package prompt splits a free-form generation prompt into per-screen
// requests. Humans describe screen lists in several shapes, so parsing
// tries a cascade of strategies from most to least structured: header
// blocks whose name lines end with a colon, bulleted lists, a single
// comma-separated line, and finally one screen per line.
package prompt
