// Package filesystem provides filesystem implementations for matrix.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem used in production and an afero-backed one used to
// run workspace code against in-memory trees in tests.
package filesystem
