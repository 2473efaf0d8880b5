// Package layers installs pinned Python packages into layer directories and
// zips each directory into a function-layer archive.
package layers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"github.com/ik-hxr/cms-backend/internal/config"
	"github.com/ik-hxr/cms-backend/internal/messages"
	"github.com/ik-hxr/cms-backend/internal/runner"
)

// Options configures a Packager.
type Options struct {
	// Root is the repository root that layer paths are relative to.
	Root        string
	Installer   string
	InstallArgs []string
	// Clean removes each install directory before installing. Without it,
	// files left by a previous run stay and the installer decides what to replace.
	Clean bool
	// LockPath, when set, is flocked for the whole build.
	LockPath string
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *zap.Logger
}

// Result describes one archive written by Build.
type Result struct {
	Layer   config.Layer
	Archive string
	Files   []string
	// Previous holds the membership of the archive that was replaced, if any.
	Previous []string
	Existed  bool
}

// Changed reports whether the archive membership differs from the replaced archive.
func (r Result) Changed() bool {
	if !r.Existed {
		return false
	}
	return !slices.Equal(r.Previous, r.Files)
}

// Packager builds layer archives. Steps run strictly in sequence and the first
// failure stops the build without cleaning up what was already created.
type Packager struct {
	sys  System
	opts Options
}

// NewPackager returns a Packager for sys.
func NewPackager(sys System, opts Options) (*Packager, error) {
	if sys == nil {
		return nil, errors.New(messages.LayersSystemRequired)
	}
	if opts.Installer == "" {
		opts.Installer = config.DefaultInstaller
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Packager{sys: sys, opts: opts}, nil
}

// Build creates every install directory, then runs the installer once per
// layer, then writes one archive per layer.
func (p *Packager) Build(ctx context.Context, layers []config.Layer) ([]Result, error) {
	if p.opts.LockPath == "" {
		return p.build(ctx, layers)
	}
	var results []Result
	err := withFileLock(p.opts.LockPath, func() error {
		var err error
		results, err = p.build(ctx, layers)
		return err
	})
	return results, err
}

func (p *Packager) build(ctx context.Context, layers []config.Layer) ([]Result, error) {
	for _, layer := range layers {
		if err := p.prepare(layer); err != nil {
			return nil, err
		}
	}
	for _, layer := range layers {
		if err := p.install(ctx, layer); err != nil {
			return nil, err
		}
	}

	exclude := make(map[string]struct{}, len(layers))
	for _, layer := range layers {
		exclude[filepath.Clean(p.abs(layer.Archive))] = struct{}{}
	}
	results := make([]Result, 0, len(layers))
	for _, layer := range layers {
		result, err := p.archive(layer, exclude)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (p *Packager) abs(rel string) string {
	return filepath.Join(p.opts.Root, filepath.FromSlash(rel))
}

func (p *Packager) prepare(layer config.Layer) error {
	dir := p.abs(layer.InstallDir())
	if p.opts.Clean {
		p.opts.Logger.Debug("cleaning install directory", zap.String("layer", layer.Name), zap.String("dir", dir))
		if err := p.sys.RemoveAll(dir); err != nil {
			return fmt.Errorf(messages.LayersCleanDirFmt, dir, err)
		}
	}
	if err := p.sys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf(messages.LayersCreateDirFmt, dir, err)
	}
	_, _ = fmt.Fprintf(p.opts.Stdout, messages.LayersCreatedDirsFmt, layer.InstallDir())
	return nil
}

// InstallArgv returns the installer command line for layer, with targetDir as the install target.
func InstallArgv(installer string, installArgs []string, targetDir string, layer config.Layer) []string {
	argv := []string{installer, "install"}
	argv = append(argv, installArgs...)
	argv = append(argv, "--target", targetDir)
	for _, pkg := range layer.Packages {
		argv = append(argv, pkg.Requirement())
	}
	return argv
}

func (p *Packager) install(ctx context.Context, layer config.Layer) error {
	argv := InstallArgv(p.opts.Installer, p.opts.InstallArgs, p.abs(layer.InstallDir()), layer)
	path, err := p.sys.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf(messages.LayersInstallFailedFmt, layer.Name, err)
	}
	p.opts.Logger.Debug("installing layer packages",
		zap.String("layer", layer.Name),
		zap.Strings("argv", argv))
	err = p.sys.Run(ctx, runner.Command{
		Path:   path,
		Args:   argv,
		Env:    p.sys.Environ(),
		Dir:    p.opts.Root,
		Stdout: p.opts.Stdout,
		Stderr: p.opts.Stderr,
	})
	if err != nil {
		return fmt.Errorf(messages.LayersInstallFailedFmt, layer.Name, err)
	}
	return nil
}

func (p *Packager) archive(layer config.Layer, exclude map[string]struct{}) (Result, error) {
	archivePath := p.abs(layer.Archive)
	result := Result{Layer: layer, Archive: archivePath}

	previous, existed, err := listIfExists(archivePath)
	switch {
	case err != nil:
		p.opts.Logger.Warn("previous archive unreadable; treating as absent",
			zap.String("archive", archivePath), zap.Error(err))
	case existed:
		result.Existed = true
		result.Previous = previous
	}

	files, err := collectFiles(p.sys, p.abs(layer.Dir), exclude)
	if err != nil {
		return result, err
	}
	if err := writeArchive(p.sys, p.abs(layer.Dir), files, archivePath); err != nil {
		return result, err
	}
	result.Files = files
	_, _ = fmt.Fprintf(p.opts.Stdout, messages.LayersArchiveWrittenFmt, layer.Name, layer.Archive, len(files))
	if result.Changed() {
		_, _ = fmt.Fprintf(p.opts.Stdout, messages.LayersMembershipChangedFmt, layer.Name, MembershipDiff(layer.Archive, result.Previous, result.Files))
	}
	return result, nil
}
