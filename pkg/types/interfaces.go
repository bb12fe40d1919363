package types

import (
	"io/fs"
)

// FS is the filesystem interface required for matrix operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	Lstat(name string) (fs.FileInfo, error)

	// EvalSymlinks returns name with every symlink resolved.
	EvalSymlinks(name string) (string, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
}
