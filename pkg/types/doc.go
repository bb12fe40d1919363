// Package types defines the domain records shared by every matrix component:
// Source and Matrix as persisted by the store, the ReconcileReport produced by
// the reconciler, and the FS interface all filesystem access goes through.
package types
