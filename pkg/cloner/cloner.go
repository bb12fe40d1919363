package cloner

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/matrix/pkg/errors"
	"github.com/arthur-debert/matrix/pkg/executil"
	"github.com/arthur-debert/matrix/pkg/linker"
	"github.com/arthur-debert/matrix/pkg/logging"
	"github.com/arthur-debert/matrix/pkg/types"
	"github.com/gopasspw/gitconfig"
	"github.com/rs/zerolog"
)

// Clone directory layouts.
const (
	LayoutHashed = "hashed"
	LayoutNamed  = "named"
)

// Defaults applied by New for zero Options fields.
const (
	DefaultTool         = "git"
	DefaultTimeout      = 5 * time.Minute
	DefaultProbeTimeout = 5 * time.Second
)

// Options configures a Cloner. Root is required.
type Options struct {
	Root         string
	Tool         string
	Timeout      time.Duration
	ProbeTimeout time.Duration
	Layout       string
}

// Cloner clones remote sources into the shared repositories root.
type Cloner struct {
	opts   Options
	fs     types.FS
	runner executil.Runner
	logger zerolog.Logger
}

// New creates a Cloner. Zero option fields take the package defaults.
func New(opts Options, fs types.FS, runner executil.Runner) *Cloner {
	if opts.Tool == "" {
		opts.Tool = DefaultTool
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = DefaultProbeTimeout
	}
	if opts.Layout == "" {
		opts.Layout = LayoutHashed
	}
	return &Cloner{
		opts:   opts,
		fs:     fs,
		runner: runner,
		logger: logging.GetLogger("cloner"),
	}
}

// Root returns the repositories root.
func (c *Cloner) Root() string {
	return c.opts.Root
}

// DirName returns the primary directory name for url. name is only used by
// the named layout.
func (c *Cloner) DirName(rawURL, name string) string {
	if c.opts.Layout == LayoutNamed {
		return namedBase(rawURL, name)
	}
	return ExtractName(rawURL) + "-" + URLHash(rawURL)[:12]
}

// fallbackDirName is tried when DirName is taken by something that is not a
// clone of url.
func (c *Cloner) fallbackDirName(rawURL, name string) string {
	if c.opts.Layout == LayoutNamed {
		return namedBase(rawURL, name) + "-" + URLHash(rawURL)[:8]
	}
	return ExtractName(rawURL) + "-" + URLHash(rawURL)
}

func namedBase(rawURL, name string) string {
	base := linker.SanitizeName(name)
	if base == "" || base == "." || base == ".." {
		return ExtractName(rawURL)
	}
	return base
}

type dirState int

const (
	dirAbsent dirState = iota
	dirCached
	dirForeign
)

// Clone returns the local clone of url, cloning it first when the cache
// has no copy. A second call for the same URL returns the same path without
// running the clone tool again.
func (c *Cloner) Clone(ctx context.Context, rawURL, name string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", errors.New(errors.ErrClone, "no URL to clone")
	}

	if err := c.probeTool(ctx); err != nil {
		return "", err
	}

	if err := c.fs.MkdirAll(c.opts.Root, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrClone, "failed to create repositories root %s", c.opts.Root)
	}

	dir := filepath.Join(c.opts.Root, c.DirName(rawURL, name))
	switch c.inspect(dir, rawURL) {
	case dirCached:
		c.logger.Debug().Str("url", rawURL).Str("path", dir).Msg("Repository already cloned")
		return dir, nil
	case dirForeign:
		alt := filepath.Join(c.opts.Root, c.fallbackDirName(rawURL, name))
		c.logger.Warn().
			Str("taken", dir).
			Str("path", alt).
			Msg("Clone directory is taken by something else, using disambiguated name")
		dir = alt
		switch c.inspect(dir, rawURL) {
		case dirCached:
			return dir, nil
		case dirForeign:
			return "", errors.Newf(errors.ErrClone, "clone directory %s is taken by another entry", dir).
				WithDetail("url", rawURL)
		}
	}

	if err := c.runClone(ctx, rawURL, dir); err != nil {
		return "", err
	}
	return dir, nil
}

func (c *Cloner) runClone(ctx context.Context, rawURL, dir string) error {
	c.logger.Info().Str("url", rawURL).Str("path", dir).Msg("Cloning repository")
	done := logging.LogOperationStart(c.logger, "clone")
	defer done()

	res, err := c.runner.Run(ctx, executil.Command{
		Name:    c.opts.Tool,
		Args:    []string{"clone", rawURL, dir},
		Timeout: c.opts.Timeout,
	})
	if err != nil {
		c.discardPartial(dir)
		if stderrors.Is(err, executil.ErrTimeout) {
			return errors.Wrapf(err, errors.ErrCloneTimeout, "clone of %s timed out after %s", rawURL, c.opts.Timeout).
				WithDetail("url", rawURL)
		}
		return errors.Wrapf(err, errors.ErrClone, "failed to run %s clone", c.opts.Tool).
			WithDetail("url", rawURL)
	}
	if res.ExitCode != 0 {
		c.discardPartial(dir)
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = "exit status " + strconv.Itoa(res.ExitCode)
		}
		return errors.Newf(errors.ErrClone, "%s clone failed: %s", c.opts.Tool, msg).
			WithDetail("url", rawURL).
			WithDetail("exit_code", res.ExitCode)
	}
	if !c.IsRepository(dir) {
		return errors.Newf(errors.ErrClone, "clone of %s produced no repository at %s", rawURL, dir)
	}
	return nil
}

// discardPartial removes whatever an interrupted clone left behind so the
// next attempt does not mistake it for a cached copy.
func (c *Cloner) discardPartial(dir string) {
	if err := c.fs.RemoveAll(dir); err != nil {
		c.logger.Warn().Err(err).Str("path", dir).Msg("Failed to remove partial clone")
	}
}

// probeTool fails fast with ErrToolMissing when the clone tool cannot run.
func (c *Cloner) probeTool(ctx context.Context) error {
	if err := c.runner.LookPath(c.opts.Tool); err != nil {
		return errors.Wrapf(err, errors.ErrToolMissing, "%s is not installed", c.opts.Tool)
	}
	res, err := c.runner.Run(ctx, executil.Command{
		Name:    c.opts.Tool,
		Args:    []string{"--version"},
		Timeout: c.opts.ProbeTimeout,
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrToolMissing, "%s is not usable", c.opts.Tool)
	}
	if res.ExitCode != 0 {
		return errors.Newf(errors.ErrToolMissing, "%s --version exited with %d", c.opts.Tool, res.ExitCode)
	}
	return nil
}

func (c *Cloner) inspect(dir, rawURL string) dirState {
	if _, err := c.fs.Stat(dir); err != nil {
		if !os.IsNotExist(err) {
			c.logger.Debug().Err(err).Str("path", dir).Msg("Cannot stat clone directory")
		}
		return dirAbsent
	}
	if !c.IsRepository(dir) {
		return dirForeign
	}
	if origin, ok := c.OriginURL(dir); ok && !SameRepository(origin, rawURL) {
		c.logger.Debug().Str("path", dir).Str("origin", origin).Msg("Clone belongs to another repository")
		return dirForeign
	}
	return dirCached
}

// IsRepository reports whether path holds a git repository marker.
func (c *Cloner) IsRepository(path string) bool {
	_, err := c.fs.Stat(filepath.Join(path, ".git"))
	return err == nil
}

// OriginURL reads remote.origin.url from the clone's .git/config.
func (c *Cloner) OriginURL(path string) (string, bool) {
	data, err := c.fs.ReadFile(filepath.Join(path, ".git", "config"))
	if err != nil {
		return "", false
	}
	cfg := gitconfig.ParseConfig(bytes.NewReader(data))
	return cfg.Get("remote.origin.url")
}
