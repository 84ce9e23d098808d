// Package fsync copies and removes filesystem trees with a confirmation gate
// in front of every destructive step.
//
// Confirmation is requested only when something would be deleted: replacing
// an existing directory copy, or removing an item. Merging contents and
// copying into a fresh destination never prompt. A replace-mode copy onto a
// destination that already mirrors the source is a no-op, so repeated syncs
// are idempotent and silent.
//
// Mutations go through a Mutator. Live performs them; DryRun only logs what
// would have happened. Reads always hit the configured filesystem.
//
// Every failure is logged as a single human-readable line (unless quiet) and
// returned as an error matching one of the package's sentinel values.
// Operations are not safe for concurrent use on the same destination.
package fsync
