// Package engine implements the agent run orchestration engine: the pure
// decision layer that validates run and task mutations against the current
// snapshot of a run's state. It performs no I/O; persistence, locking and
// notification belong to the calling layer.
package engine

import "github.com/coscribe/coscribe/pkg/models"

// Overlaps reports whether two document scopes describe overlapping
// regions. Only numeric ranges participate: an absent or opaque scope on
// either side never conflicts. Ranges are compared as closed intervals
// after normalization, so touching endpoints count as overlap.
func Overlaps(a, b *models.DocumentScope) bool {
	if !a.IsNumeric() || !b.IsNumeric() {
		return false
	}
	aFrom, aTo := a.Bounds()
	bFrom, bTo := b.Bounds()
	return aFrom <= bTo && bFrom <= aTo
}
