// Package engine implements the ordered-sibling sequencing engine.
//
// The engine is the only code path allowed to mutate sequence numbers.
// It keeps every sibling group densely numbered - for a group of N
// records the numbers in use are exactly 1..N, with no duplicates and
// no gaps - across all four mutation kinds: insert, delete, single-item
// move, and arbitrary bulk reorder.
//
// ARCHITECTURE:
//
// Every mutation flows through the same pipeline:
//
//  1. Invariant validation (validator.go): requests that cannot yield
//     a dense group are rejected before any write, with the precise
//     arithmetic reason (expected next number, valid occupied range).
//  2. Reassignment planning (sequencer.go): pure computation of the
//     minimal (id, old, new) set restoring density.
//  3. Two-phase execution (executor.go): inside one transaction, every
//     planned record is first moved to a disjoint high range
//     (number + numberOffset), then written to its final number. The
//     store checks uniqueness per statement, so a single-pass apply
//     could collide with a number another record has not yet vacated;
//     the offset pass makes write order irrelevant.
//  4. Post-commit notification (notifier.go): best-effort change
//     events and cache invalidation. Failures are logged, never
//     propagated - the renumbering is already committed.
//
// There is no background goroutine: all work happens synchronously in
// the caller's request, suspending only on store I/O. Concurrent
// mutations on the same group serialize on the store's single-writer
// connection; on a residual constraint or lock conflict the engine
// retries the whole read-validate-plan-apply cycle from a fresh
// snapshot.
package engine
