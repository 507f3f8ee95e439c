package engine

import (
	"fmt"

	"github.com/scribehq/outline/internal/hierarchy"
)

// The invariant validator guards the engine's entry points. Every
// check is pure - it runs against a snapshot of the sibling group and
// performs no writes. A request that passes validation can always be
// realized by the sequencer without breaking density.

// validateInsert accepts only the logical next slot: size+1.
//
// The engine never auto-corrects a mis-numbered insert; it surfaces
// the arithmetic mismatch so the caller (typically a UI that read a
// stale group size) can resubmit with the correct number.
func validateInsert(level hierarchy.Level, parentID string, size, requested int) error {
	if requested != size+1 {
		return newIllogicalInsertError(level, parentID, requested, size)
	}
	return nil
}

// validateMove accepts only targets that denote an occupied slot:
// 1 <= requested <= size. A caller cannot "move to slot 9" in a group
// of 5. Moving a record onto its own slot is rejected as meaningless.
func validateMove(level hierarchy.Level, parentID string, size, current, requested int) error {
	if requested < 1 || requested > size {
		return newIllogicalMoveError(level, parentID, requested, size)
	}
	if requested == current {
		return &MutationError{
			Code:     ErrCodeIllogicalNumber,
			Message:  fmt.Sprintf("move to number %d rejected: record already holds that number", requested),
			Level:    level,
			ParentID: parentID,
		}
	}
	return nil
}

// validateReorder accepts a target permutation for a subset of the
// group: ids must be distinct members of the group, and the target
// numbers must be a bijection onto the slots that subset currently
// occupies. Anything else would punch a gap or a duplicate into the
// group.
func validateReorder(level hierarchy.Level, parentID string, siblings []hierarchy.Sibling, assignments []Assignment) error {
	if len(assignments) == 0 {
		return newIllogicalReorderError(level, parentID, "no assignments supplied")
	}

	current := make(map[string]int, len(siblings))
	for _, sib := range siblings {
		current[sib.ID] = sib.Number
	}

	// subsetSlots holds the numbers the named records occupy now; the
	// targets must consume exactly these slots, each once.
	subsetSlots := make(map[int]bool, len(assignments))
	seenID := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		if seenID[a.ID] {
			return newIllogicalReorderErrorf(level, parentID, "record %q listed twice", a.ID)
		}
		seenID[a.ID] = true

		num, ok := current[a.ID]
		if !ok {
			return newIllogicalReorderErrorf(level, parentID, "record %q is not in the group", a.ID)
		}
		subsetSlots[num] = true
	}

	usedTarget := make(map[int]bool, len(assignments))
	for _, a := range assignments {
		if !subsetSlots[a.Number] {
			return newIllogicalReorderErrorf(level, parentID,
				"target number %d for record %q is not a slot the subset occupies", a.Number, a.ID)
		}
		if usedTarget[a.Number] {
			return newIllogicalReorderErrorf(level, parentID, "target number %d assigned twice", a.Number)
		}
		usedTarget[a.Number] = true
	}

	return nil
}

// newIllogicalReorderErrorf is newIllogicalReorderError with formatting.
func newIllogicalReorderErrorf(level hierarchy.Level, parentID, format string, args ...any) *MutationError {
	return newIllogicalReorderError(level, parentID, fmt.Sprintf(format, args...))
}
