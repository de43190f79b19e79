// Package layout computes deterministic world-space placement for screens
// arriving on the canvas.
//
// Placement is a pure function of the current screen count, the number of
// new screens, and their frame class; no randomness and no history. The
// positions returned for one call never overlap each other. Existing
// screens' exact positions are deliberately not consulted: a user-dragged
// screen may later coincide visually with a new cluster, and that is an
// accepted approximation of the placement policy, not a defect.
//
// Wide frames stack in a single centered column for top-to-bottom
// scanning; compact frames form a two-column grid centered on the world
// origin for side-by-side comparison.
package layout
