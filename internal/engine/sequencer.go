package engine

import "github.com/scribehq/outline/internal/hierarchy"

// The sequencer translates a validated mutation intent into the
// minimal ordered set of number reassignments that restores density.
// It is pure: it reads a snapshot of the sibling group and computes;
// the executor applies.

// Reassignment moves one record from Old to New.
type Reassignment struct {
	ID  string
	Old int
	New int
}

// Assignment is one entry of a bulk-reorder request: the caller wants
// record ID to end up at Number.
type Assignment struct {
	ID     string
	Number int
}

// planDelete compacts the group after the record at `deleted` is
// removed: every record numbered above the vacated slot shifts down
// by one. Records below it are untouched. Single linear scan.
func planDelete(siblings []hierarchy.Sibling, deleted int) []Reassignment {
	var plan []Reassignment
	for _, sib := range siblings {
		if sib.Number > deleted {
			plan = append(plan, Reassignment{ID: sib.ID, Old: sib.Number, New: sib.Number - 1})
		}
	}
	return plan
}

// planMove relocates the record with the given id from slot `from` to
// slot `to`, rotating the sub-range between them by one:
//
//	to > from: records in (from, to] shift down by one
//	to < from: records in [to, from) shift up by one
//
// Only records inside the rotated sub-range appear in the plan; the
// rest of the group keeps its numbers.
func planMove(siblings []hierarchy.Sibling, id string, from, to int) []Reassignment {
	var plan []Reassignment
	for _, sib := range siblings {
		switch {
		case sib.ID == id:
			plan = append(plan, Reassignment{ID: sib.ID, Old: from, New: to})
		case to > from && sib.Number > from && sib.Number <= to:
			plan = append(plan, Reassignment{ID: sib.ID, Old: sib.Number, New: sib.Number - 1})
		case to < from && sib.Number >= to && sib.Number < from:
			plan = append(plan, Reassignment{ID: sib.ID, Old: sib.Number, New: sib.Number + 1})
		}
	}
	return plan
}

// planReorder realizes an arbitrary permutation of a subset of the
// group. No minimal-swap decomposition is attempted: an arbitrary
// permutation can require every element to move, and the two-phase
// write makes a full rewrite of the subset exactly as safe as a
// clever one, so every named record is planned - including ones whose
// number happens not to change.
func planReorder(siblings []hierarchy.Sibling, assignments []Assignment) []Reassignment {
	current := make(map[string]int, len(siblings))
	for _, sib := range siblings {
		current[sib.ID] = sib.Number
	}

	plan := make([]Reassignment, 0, len(assignments))
	for _, a := range assignments {
		plan = append(plan, Reassignment{ID: a.ID, Old: current[a.ID], New: a.Number})
	}
	return plan
}
