// Package reconcile compares a matrix record and its resolved sources with
// what is on disk and repairs the difference.
//
// A run goes through four steps:
//
//  1. Workspace: a missing workspace directory is recreated together with
//     its manifest. Failing to create it aborts the run.
//  2. Manifest: in an existing workspace, a missing manifest is regenerated.
//  3. Orphans: source ids of the matrix with no resolved record are
//     reported, in matrix order. Nothing is changed for them.
//  4. Sources: each resolved source is checked and, where possible, linked
//     (and for remote sources recloned) in input order. A failure on one
//     source becomes an error entry in the report and never stops the
//     others.
//
// Recreating the workspace does not end the run: steps 3 and 4 still run,
// so a single call leaves every repairable source linked.
//
// Nothing is cached between runs; every call starts from the filesystem.
// Reconciling the same matrix from two goroutines at once is not safe.
package reconcile
