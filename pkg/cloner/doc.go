// Package cloner keeps a shared, content-addressed cache of git clones.
//
// Every remote source lives under one repositories root, not per matrix.
// With the default hashed layout a clone directory is named
// "<repo>-<hash>", where hash is the BLAKE3 digest of the normalized URL:
// the same repository reached over https or ssh maps to the same directory,
// and two different repositories can never collide. The human-readable
// source name is display-only in that layout.
//
// The named layout keeps directories called after the source name (or the
// repository name from the URL) and falls back to "<name>-<hash[:8]>" when
// that directory is taken by something that is not a clone of the URL.
//
// The clone itself is an external process driven through executil.Runner.
package cloner
