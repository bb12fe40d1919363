// pkg/testutil/runner.go
// DEPENDENCIES: executil, types
// PURPOSE: Fake executil.Runner simulating a git executable

package testutil

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/arthur-debert/matrix/pkg/executil"
	"github.com/arthur-debert/matrix/pkg/types"
)

// FakeResponse is a canned answer for one subcommand.
type FakeResponse struct {
	Result executil.Result
	Err    error
}

// FakeRunner records every command and answers like a well-behaved git:
// "--version" succeeds and "clone <url> <dir>" creates <dir>/.git/config
// with <url> as origin on FS.
// Responses keyed by subcommand ("clone", "--version") replace the default
// behaviour; a canned clone response does not create the directory.
type FakeRunner struct {
	FS types.FS

	// Missing lists executables LookPath should not find.
	Missing map[string]bool

	// Responses overrides the default answer per subcommand.
	Responses map[string]FakeResponse

	// OnRun, when set, runs before the response is chosen. Tests use it to
	// block on a context or to mutate the filesystem mid-clone.
	OnRun func(ctx context.Context, cmd executil.Command)

	mu    sync.Mutex
	calls []executil.Command
}

// NewFakeRunner returns a FakeRunner writing fake clones to fs.
func NewFakeRunner(fs types.FS) *FakeRunner {
	return &FakeRunner{
		FS:        fs,
		Missing:   map[string]bool{},
		Responses: map[string]FakeResponse{},
	}
}

// LookPath fails for executables listed in Missing.
func (f *FakeRunner) LookPath(name string) error {
	if f.Missing[name] {
		return &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return nil
}

// Run records cmd and returns the configured or default response.
func (f *FakeRunner) Run(ctx context.Context, cmd executil.Command) (executil.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()

	if f.OnRun != nil {
		f.OnRun(ctx, cmd)
	}

	if f.Missing[cmd.Name] {
		return executil.Result{ExitCode: -1}, &exec.Error{Name: cmd.Name, Err: exec.ErrNotFound}
	}

	sub := subcommand(cmd)
	if resp, ok := f.Responses[sub]; ok {
		return resp.Result, resp.Err
	}

	switch sub {
	case "--version":
		return executil.Result{Stdout: cmd.Name + " version 2.43.0\n"}, nil
	case "clone":
		if len(cmd.Args) < 3 {
			return executil.Result{Stderr: "usage: clone <url> <dir>", ExitCode: 129}, nil
		}
		url, dest := cmd.Args[1], cmd.Args[2]
		if err := f.FS.MkdirAll(filepath.Join(dest, ".git"), 0755); err != nil {
			return executil.Result{Stderr: err.Error(), ExitCode: 128}, nil
		}
		if err := f.FS.WriteFile(filepath.Join(dest, ".git", "config"), []byte(GitConfig(url)), 0644); err != nil {
			return executil.Result{Stderr: err.Error(), ExitCode: 128}, nil
		}
		return executil.Result{Stderr: "Cloning into '" + dest + "'...\n"}, nil
	}
	return executil.Result{}, nil
}

// GitConfig returns a minimal .git/config with url as origin.
func GitConfig(url string) string {
	return "[core]\n\trepositoryformatversion = 0\n[remote \"origin\"]\n\turl = " + url +
		"\n\tfetch = +refs/heads/*:refs/remotes/origin/*\n"
}

// FailClone makes every clone exit with 128 and stderr.
func (f *FakeRunner) FailClone(stderr string) {
	f.Responses["clone"] = FakeResponse{Result: executil.Result{Stderr: stderr, ExitCode: 128}}
}

// Calls returns a copy of the recorded commands.
func (f *FakeRunner) Calls() []executil.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]executil.Command(nil), f.calls...)
}

// CallCount returns how many recorded commands had the given subcommand.
func (f *FakeRunner) CallCount(sub string) int {
	count := 0
	for _, cmd := range f.Calls() {
		if subcommand(cmd) == sub {
			count++
		}
	}
	return count
}

// Reset forgets recorded commands.
func (f *FakeRunner) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// CommandLine renders cmd as a single string for assertions.
func CommandLine(cmd executil.Command) string {
	return strings.TrimSpace(cmd.Name + " " + strings.Join(cmd.Args, " "))
}

func subcommand(cmd executil.Command) string {
	if len(cmd.Args) == 0 {
		return ""
	}
	return cmd.Args[0]
}
