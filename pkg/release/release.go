// Package release publishes a Python project: it commits and tags the
// current version, pushes both, builds the distributions and uploads them
// to the package index.
//
// The pipeline is a fixed list of external commands run in order. It stops at
// the first failure and does not roll back completed steps; a failed upload
// leaves the tag pushed.
package release

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autogen/pkg/config"
	"github.com/matzehuels/autogen/pkg/errors"
	"github.com/matzehuels/autogen/pkg/git"
	"github.com/matzehuels/autogen/pkg/observability"
	"github.com/matzehuels/autogen/pkg/shell"
)

// CommitMessage is the message of the release commit.
const CommitMessage = "version update"

// DistDir holds the built distributions.
const DistDir = "dist"

// Step is one command of the release pipeline.
type Step struct {
	Name string
	Cmd  shell.Cmd
	Glob bool // arguments are glob patterns relative to the project directory
}

// Index reports whether a version of a project is already published.
type Index interface {
	HasRelease(ctx context.Context, name, version string) (bool, error)
}

// Releaser runs the release pipeline for one project directory.
type Releaser struct {
	Dir    string
	Name   string // distribution name, used by Check
	Config *config.Config
	Runner shell.Runner
	Index  Index       // nil disables Check
	Logger *log.Logger // nil uses log.Default()

	// OnStep is called before each step runs.
	OnStep func(i int, s Step)
}

func (r *Releaser) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

// Plan returns the steps that release version, in execution order.
func (r *Releaser) Plan(version string) ([]Step, error) {
	if err := errors.ValidateTagName(version); err != nil {
		return nil, err
	}
	repo := git.New(r.Dir, r.Runner)

	build, err := shell.Parse(r.Config.Python, "setup.py", "clean", "--all", "sdist", "bdist_wheel")
	if err != nil {
		return nil, err
	}
	var uploadArgs []string
	uploadArgs = append(uploadArgs, "upload")
	if r.Config.Repository != "" {
		uploadArgs = append(uploadArgs, "--repository", r.Config.Repository)
	}
	uploadArgs = append(uploadArgs, DistDir+"/*"+version+"*")
	upload, err := shell.Parse(r.Config.Twine, uploadArgs...)
	if err != nil {
		return nil, err
	}

	return []Step{
		{Name: "commit", Cmd: repo.CommitAllCmd(CommitMessage)},
		{Name: "tag", Cmd: repo.TagCmd(version)},
		{Name: "push", Cmd: repo.PushCmd()},
		{Name: "push tags", Cmd: repo.PushTagsCmd(r.Config.Remote, r.Config.Branch)},
		{Name: "build", Cmd: build.In(r.Dir)},
		{Name: "upload", Cmd: upload.In(r.Dir), Glob: true},
	}, nil
}

// Check fails with ALREADY_RELEASED when version is already on the index.
func (r *Releaser) Check(ctx context.Context, version string) error {
	if r.Index == nil {
		return nil
	}
	found, err := r.Index.HasRelease(ctx, r.Name, version)
	if err != nil {
		return err
	}
	if found {
		return errors.New(errors.ErrCodeAlreadyReleased, "%s %s is already published; bump the version first", r.Name, version)
	}
	return nil
}

// Run executes the release of version, stopping at the first failed step.
func (r *Releaser) Run(ctx context.Context, version string) error {
	steps, err := r.Plan(version)
	if err != nil {
		return err
	}
	logger := r.logger()
	for i, s := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		cmd := s.Cmd
		if s.Glob {
			if cmd, err = r.expand(cmd); err != nil {
				return err
			}
		}
		if r.OnStep != nil {
			r.OnStep(i, Step{Name: s.Name, Cmd: cmd})
		}
		logger.Debug("release step", "step", s.Name, "cmd", cmd.String())
		hooks := observability.Release()
		hooks.OnStepStart(ctx, s.Name)
		start := time.Now()
		_, err := r.Runner.Run(ctx, cmd)
		hooks.OnStepComplete(ctx, s.Name, time.Since(start), err)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeCommandFailed
			}
			return errors.Wrap(code, err, "release step %q", s.Name)
		}
	}
	logger.Info("released", "version", version)
	return nil
}

// expand replaces glob arguments with the matching paths. A pattern without
// matches is a NOT_FOUND error.
func (r *Releaser) expand(c shell.Cmd) (shell.Cmd, error) {
	var args []string
	for _, a := range c.Args {
		if !strings.ContainsAny(a, "*?[") {
			args = append(args, a)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(r.Dir, filepath.FromSlash(a)))
		if err != nil {
			return c, errors.Wrap(errors.ErrCodeInvalidInput, err, "bad pattern %q", a)
		}
		if len(matches) == 0 {
			return c, errors.New(errors.ErrCodeNotFound, "no distributions match %s", a)
		}
		for _, m := range matches {
			rel, err := filepath.Rel(r.Dir, m)
			if err != nil {
				rel = m
			}
			args = append(args, filepath.ToSlash(rel))
		}
	}
	c.Args = args
	return c, nil
}

// Conda would publish to the conda channel. It is not supported.
func (r *Releaser) Conda(ctx context.Context) error {
	return errors.New(errors.ErrCodeNotImplemented, "conda release is not implemented")
}
