package release

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autogen/pkg/config"
	"github.com/matzehuels/autogen/pkg/errors"
	"github.com/matzehuels/autogen/pkg/shell/shelltest"
)

func newReleaser(t *testing.T, runner *shelltest.Runner) *Releaser {
	t.Helper()
	return &Releaser{
		Dir:    t.TempDir(),
		Name:   "demo",
		Config: config.Default(),
		Runner: runner,
		Logger: log.New(&bytes.Buffer{}),
	}
}

func writeDist(t *testing.T, dir string, names ...string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, DistDir), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, DistDir, n), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestPlan(t *testing.T) {
	r := newReleaser(t, shelltest.New())
	r.Config.Repository = "testpypi"

	steps, err := r.Plan("1.0.1")
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		name string
		argv []string
	}{
		{"commit", []string{"git", "commit", "-a", "-m", "version update"}},
		{"tag", []string{"git", "tag", "1.0.1"}},
		{"push", []string{"git", "push"}},
		{"push tags", []string{"git", "push", "--tags", "origin", "master"}},
		{"build", []string{"python", "setup.py", "clean", "--all", "sdist", "bdist_wheel"}},
		{"upload", []string{"twine", "upload", "--repository", "testpypi", "dist/*1.0.1*"}},
	}
	if len(steps) != len(want) {
		t.Fatalf("Plan() returned %d steps, want %d", len(steps), len(want))
	}
	for i, s := range steps {
		argv := append([]string{s.Cmd.Name}, s.Cmd.Args...)
		if s.Name != want[i].name || !reflect.DeepEqual(argv, want[i].argv) {
			t.Errorf("step %d = %s %q, want %s %q", i, s.Name, argv, want[i].name, want[i].argv)
		}
		if s.Cmd.Dir != r.Dir {
			t.Errorf("step %d runs in %q, want %q", i, s.Cmd.Dir, r.Dir)
		}
	}
}

func TestPlanRejectsUntaggableVersion(t *testing.T) {
	r := newReleaser(t, shelltest.New())
	for _, v := range []string{"", " ", "1..0", "-1.0.0", "1.0*"} {
		if _, err := r.Plan(v); !errors.Is(err, errors.ErrCodeInvalidVersion) {
			t.Errorf("Plan(%q) error = %v, want INVALID_VERSION", v, err)
		}
	}
}

func TestRun(t *testing.T) {
	runner := shelltest.New()
	r := newReleaser(t, runner)
	writeDist(t, r.Dir, "demo-1.0.1.tar.gz", "demo-1.0.1-py3-none-any.whl", "demo-1.0.0.tar.gz")

	var seen []string
	r.OnStep = func(i int, s Step) { seen = append(seen, s.Name) }

	if err := r.Run(context.Background(), "1.0.1"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(runner.Calls) != 6 {
		t.Fatalf("ran %d commands, want 6: %q", len(runner.Calls), runner.Lines())
	}
	upload := runner.Calls[5]
	wantArgs := []string{"upload", "dist/demo-1.0.1-py3-none-any.whl", "dist/demo-1.0.1.tar.gz"}
	if !reflect.DeepEqual(upload.Args, wantArgs) {
		t.Errorf("upload args = %q, want %q", upload.Args, wantArgs)
	}
	wantSeen := []string{"commit", "tag", "push", "push tags", "build", "upload"}
	if !reflect.DeepEqual(seen, wantSeen) {
		t.Errorf("OnStep saw %q, want %q", seen, wantSeen)
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	runner := shelltest.New().On("git push", shelltest.Response{
		ExitCode: 1,
		Stderr:   "fatal: no upstream branch",
	})
	r := newReleaser(t, runner)

	err := r.Run(context.Background(), "1.0.1")
	if !errors.Is(err, errors.ErrCodeCommandFailed) {
		t.Fatalf("Run() error = %v, want COMMAND_FAILED", err)
	}
	want := []string{"git commit -a -m 'version update'", "git tag 1.0.1", "git push"}
	if got := runner.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("commands = %q, want %q", got, want)
	}
}

func TestRunInterruptedStepStaysAborted(t *testing.T) {
	aborted := errors.Wrap(errors.ErrCodeAborted, context.Canceled, "git push")
	runner := shelltest.New().On("git push", shelltest.Response{Err: aborted})
	r := newReleaser(t, runner)

	err := r.Run(context.Background(), "1.0.1")
	if !errors.Is(err, errors.ErrCodeAborted) || !stderrors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want ABORTED wrapping context.Canceled", err)
	}
	if n := len(runner.Calls); n != 3 {
		t.Errorf("ran %d commands, want 3", n)
	}
}

func TestRunWithoutDistributions(t *testing.T) {
	runner := shelltest.New()
	r := newReleaser(t, runner)
	writeDist(t, r.Dir, "demo-0.9.0.tar.gz")

	err := r.Run(context.Background(), "1.0.1")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("Run() error = %v, want NOT_FOUND", err)
	}
	if n := len(runner.Calls); n != 5 {
		t.Errorf("ran %d commands before failing, want 5", n)
	}
}

type fakeIndex map[string]bool

func (f fakeIndex) HasRelease(_ context.Context, name, version string) (bool, error) {
	return f[name+"=="+version], nil
}

func TestCheck(t *testing.T) {
	r := newReleaser(t, shelltest.New())
	ctx := context.Background()

	if err := r.Check(ctx, "1.0.0"); err != nil {
		t.Errorf("Check() without index = %v", err)
	}

	r.Index = fakeIndex{"demo==1.0.0": true}
	if err := r.Check(ctx, "1.0.0"); !errors.Is(err, errors.ErrCodeAlreadyReleased) {
		t.Errorf("Check(1.0.0) = %v, want ALREADY_RELEASED", err)
	}
	if err := r.Check(ctx, "1.0.1"); err != nil {
		t.Errorf("Check(1.0.1) = %v", err)
	}
}

func TestConda(t *testing.T) {
	r := newReleaser(t, shelltest.New())
	if err := r.Conda(context.Background()); !errors.Is(err, errors.ErrCodeNotImplemented) {
		t.Errorf("Conda() = %v, want NOT_IMPLEMENTED", err)
	}
}
