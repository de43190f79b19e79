// Package canvas holds the canonical screen collection for a session.
//
// The Store maps screen ids to their current {status, content, position}
// and supports the two insert paths of the canvas: optimistic inserts made
// the moment the user requests generation, and reactive inserts synthesized
// when a server update references an id the store has never seen. Patches
// apply only the fields present, leaving position and name untouched, so a
// concurrent user drag and a server-driven status update on the same screen
// touch disjoint fields.
//
// Every mutation replaces structures rather than editing shared state in
// place: List and Get hand out copies, and a snapshot taken before a
// mutation never changes under its reader.
package canvas
