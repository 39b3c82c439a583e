// Package services carries the collaborators the core needs but does not
// own: a file system view, the structured reporter, the current user's
// name, and an environment lookup. Design notes in spec.md call out that
// the original system keeps these as `shared` singletons; here they are
// passed explicitly through every public operation so tests can swap in
// fakes without mutating global state.
package services

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/arnavsurve/xcgen/internal/diag"
	"go.uber.org/zap"
)

// FileSystem is the subset of file-system operations the core needs.
// Production code uses osFileSystem; tests can supply an in-memory fake.
type FileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	RemoveAll(path string) error
	Glob(pattern string) ([]string, error)
}

type osFileSystem struct{}

func (osFileSystem) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }
func (osFileSystem) ReadFile(path string) ([]byte, error)   { return os.ReadFile(path) }
func (osFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}
func (osFileSystem) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }
func (osFileSystem) RemoveAll(path string) error                  { return os.RemoveAll(path) }
func (osFileSystem) Glob(pattern string) ([]string, error)        { return filepath.Glob(pattern) }

// Services is threaded through every public operation in the core.
type Services struct {
	FS       FileSystem
	Reporter *diag.Reporter
	Logger   *zap.Logger

	// UserName returns the OS user's name. No package in this module
	// reads it: descriptors carry user (non-shared) schemes without a
	// per-user directory path. Tests can pin it directly instead of
	// reading the real environment.
	UserName func() string

	// Getenv is the environment accessor; production code wires
	// os.Getenv, tests can pin specific variables.
	Getenv func(string) string
}

// Default builds a Services value backed by the real OS, a no-op zap
// logger, and the real current user.
func Default() *Services {
	logger := zap.NewNop()
	return &Services{
		FS:       osFileSystem{},
		Reporter: diag.NewReporter(logger),
		Logger:   logger,
		UserName: defaultUserName,
		Getenv:   os.Getenv,
	}
}

// NewProduction builds a Services value with a real zap logger chosen by
// the cobra `--verbose` flag in internal/cli: the console-encoded
// development logger when verbose, otherwise the production (JSON)
// config at warn level.
func NewProduction(verbose bool) (*Services, error) {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		logger, err = cfg.Build()
	}
	if err != nil {
		return nil, err
	}
	return &Services{
		FS:       osFileSystem{},
		Reporter: diag.NewReporter(logger),
		Logger:   logger,
		UserName: defaultUserName,
		Getenv:   os.Getenv,
	}, nil
}

func defaultUserName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "unknown"
}
