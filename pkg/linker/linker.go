// Package linker maintains one symlink per source inside a matrix workspace.
//
// A source is linked under its sanitized name, or under
// "<sanitized name>-<first 8 chars of id>" when the plain name is taken by
// something else. Every operation is idempotent and nothing but a symlink is
// ever removed.
package linker

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/matrix/pkg/errors"
	"github.com/arthur-debert/matrix/pkg/logging"
	"github.com/arthur-debert/matrix/pkg/types"
	"github.com/rs/zerolog"
)

// Linker creates, removes and checks source symlinks.
type Linker struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a Linker operating on fs.
func New(fs types.FS) *Linker {
	return &Linker{
		fs:     fs,
		logger: logging.GetLogger("linker"),
	}
}

var nameReplacer = strings.NewReplacer("/", "_", `\`, "_", ":", "_")

// SanitizeName turns a display name into a single path element.
func SanitizeName(name string) string {
	return strings.TrimSpace(nameReplacer.Replace(name))
}

// Candidates returns the two link paths a source may occupy in workspace:
// the base name first, then the id-suffixed one. A name that sanitizes to
// nothing usable (blank, "." or "..") is replaced by the short id.
func Candidates(source types.Source, workspace string) []string {
	base := SanitizeName(source.Name)
	if base == "" || base == "." || base == ".." {
		base = source.ShortID()
	}
	return []string{
		filepath.Join(workspace, base),
		filepath.Join(workspace, base+"-"+source.ShortID()),
	}
}

// Link ensures a symlink to source.Path exists in workspace and returns its
// path. An existing link to the same target is returned unchanged.
func (l *Linker) Link(source types.Source, workspace string) (string, error) {
	target, err := filepath.Abs(source.Path)
	if err != nil {
		return "", linkError(err, source, "invalid source path %s", source.Path)
	}
	if _, err := l.fs.Stat(target); err != nil {
		return "", linkError(err, source, "source path does not exist: %s", target)
	}

	if err := l.fs.MkdirAll(workspace, 0755); err != nil {
		return "", linkError(err, source, "failed to create workspace %s", workspace)
	}

	candidates := Candidates(source, workspace)
	for _, candidate := range candidates {
		if l.pointsTo(candidate, target) {
			l.logger.Debug().Str("link", candidate).Msg("Source already linked")
			return candidate, nil
		}
	}

	base, suffixed := candidates[0], candidates[1]
	linkPath := base
	if l.exists(base) {
		linkPath = suffixed
		if info, err := l.fs.Lstat(suffixed); err == nil {
			// The suffixed name carries this source's id, so a symlink there is
			// a stale link of ours. Anything else is left alone.
			if info.Mode()&fs.ModeSymlink == 0 {
				return "", linkError(os.ErrExist, source, "both %s and %s are taken", base, suffixed)
			}
			if err := l.fs.Remove(suffixed); err != nil {
				return "", linkError(err, source, "failed to remove stale link %s", suffixed)
			}
		}
	}

	if err := l.fs.Symlink(target, linkPath); err != nil {
		return "", linkError(err, source, "failed to create symlink %s", linkPath)
	}

	l.logger.Info().
		Str("source", source.Name).
		Str("link", linkPath).
		Str("target", target).
		Msg("Linked source")
	return linkPath, nil
}

// Unlink removes the symlink for source from workspace. The candidate that
// still points at source.Path wins; otherwise a dangling symlink under the
// base name, then the suffixed name, is removed. Real files and directories,
// and links to other existing targets, are never touched. No link is not an
// error.
//
// This is deliberately stricter than removing whatever symlink sits under the
// base name: a base-name link to another live directory belongs to a
// different source and is left alone.
func (l *Linker) Unlink(source types.Source, workspace string) error {
	victim := l.findLink(source, workspace)
	if victim == "" {
		l.logger.Debug().Str("source", source.Name).Msg("No link to remove")
		return nil
	}

	if err := l.fs.Remove(victim); err != nil && !os.IsNotExist(err) {
		return linkError(err, source, "failed to remove symlink %s", victim)
	}

	l.logger.Info().Str("source", source.Name).Str("link", victim).Msg("Unlinked source")
	return nil
}

// IsLinked reports whether a candidate link resolves to source.Path. Broken
// links and resolution errors count as not linked.
func (l *Linker) IsLinked(source types.Source, workspace string) bool {
	return l.LinkPath(source, workspace) != ""
}

// LinkPath returns the candidate that resolves to source.Path, or "".
func (l *Linker) LinkPath(source types.Source, workspace string) string {
	target, err := filepath.Abs(source.Path)
	if err != nil {
		return ""
	}
	for _, candidate := range Candidates(source, workspace) {
		if l.pointsTo(candidate, target) {
			return candidate
		}
	}
	return ""
}

func (l *Linker) findLink(source types.Source, workspace string) string {
	if linkPath := l.LinkPath(source, workspace); linkPath != "" {
		return linkPath
	}

	target, _ := filepath.Abs(source.Path)
	candidates := Candidates(source, workspace)

	// The source may be gone: match the raw link text first.
	for _, candidate := range candidates {
		if raw, err := l.readSymlink(candidate); err == nil && raw == target {
			return candidate
		}
	}
	for _, candidate := range candidates {
		if _, err := l.readSymlink(candidate); err != nil {
			continue
		}
		if _, err := l.fs.EvalSymlinks(candidate); err != nil {
			return candidate
		}
	}
	return ""
}

// pointsTo reports whether path is a symlink resolving to the same place as
// target.
func (l *Linker) pointsTo(path, target string) bool {
	if _, err := l.readSymlink(path); err != nil {
		return false
	}
	resolvedLink, err := l.fs.EvalSymlinks(path)
	if err != nil {
		return false
	}
	resolvedTarget, err := l.fs.EvalSymlinks(target)
	if err != nil {
		return false
	}
	return resolvedLink == resolvedTarget
}

// readSymlink returns the link text if path is a symlink.
func (l *Linker) readSymlink(path string) (string, error) {
	info, err := l.fs.Lstat(path)
	if err != nil {
		return "", err
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return "", os.ErrInvalid
	}
	return l.fs.Readlink(path)
}

func (l *Linker) exists(path string) bool {
	_, err := l.fs.Lstat(path)
	return err == nil
}

func linkError(err error, source types.Source, format string, args ...interface{}) error {
	return errors.Wrapf(err, errors.ErrLink, format, args...).
		WithDetail("source_id", source.ID).
		WithDetail("source_name", source.Name)
}
