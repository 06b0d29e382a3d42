package shell

import (
	"context"
	stderrors "errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/autogen/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line     string
		extra    []string
		wantName string
		wantArgs []string
		wantErr  bool
	}{
		{"autopep8 -", nil, "autopep8", []string{"-"}, false},
		{"python setup.py clean --all sdist bdist_wheel", nil, "python", []string{"setup.py", "clean", "--all", "sdist", "bdist_wheel"}, false},
		{`git commit -a -m 'version update'`, nil, "git", []string{"commit", "-a", "-m", "version update"}, false},
		{"twine", []string{"upload", "dist/a.whl"}, "twine", []string{"upload", "dist/a.whl"}, false},
		{"", nil, "", nil, true},
		{"echo 'unterminated", nil, "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Parse(tt.line, tt.extra...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidConfig) {
					t.Errorf("Parse(%q) code = %s, want INVALID_CONFIG", tt.line, errors.GetCode(err))
				}
				return
			}
			if got.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name, tt.wantName)
			}
			if len(got.Args) == 0 && len(tt.wantArgs) == 0 {
				return
			}
			if !reflect.DeepEqual(got.Args, tt.wantArgs) {
				t.Errorf("Args = %q, want %q", got.Args, tt.wantArgs)
			}
		})
	}
}

func TestCmdString(t *testing.T) {
	c := Command("git", "tag", "1.2.3")
	if got := c.String(); got != "git tag 1.2.3" {
		t.Errorf("String() = %q, want %q", got, "git tag 1.2.3")
	}

	quoted := Command("git", "commit", "-m", "version update").String()
	if !strings.HasPrefix(quoted, "git commit -m ") || quoted == "git commit -m version update" {
		t.Errorf("String() = %q, want quoted message", quoted)
	}
}

func TestExecRunner_Success(t *testing.T) {
	r := NewExecRunner(nil)
	res, err := r.Run(context.Background(), Command("sh", "-c", "echo out; echo err >&2"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(res.Stdout, "out") {
		t.Errorf("stdout = %q, want to contain 'out'", res.Stdout)
	}
	if !strings.Contains(res.Stderr, "err") {
		t.Errorf("stderr = %q, want to contain 'err'", res.Stderr)
	}
	if res.ExitCode != 0 {
		t.Errorf("exit code = %d, want 0", res.ExitCode)
	}
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	r := NewExecRunner(nil)
	res, err := r.Run(context.Background(), Command("sh", "-c", "echo boom >&2; exit 3"))
	if !errors.Is(err, errors.ErrCodeCommandFailed) {
		t.Fatalf("Run error = %v, want COMMAND_FAILED", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", res.ExitCode)
	}
	if !strings.Contains(errors.UserMessage(err), "boom") {
		t.Errorf("message %q should carry stderr", errors.UserMessage(err))
	}
}

func TestExecRunner_NotFound(t *testing.T) {
	r := NewExecRunner(nil)
	_, err := r.Run(context.Background(), Command("autogen-definitely-missing-binary"))
	if !errors.Is(err, errors.ErrCodeCommandNotFound) {
		t.Errorf("Run error = %v, want COMMAND_NOT_FOUND", err)
	}
}

func TestExecRunner_StdinAndDir(t *testing.T) {
	dir := t.TempDir()
	r := NewExecRunner(nil)

	c := Command("cat")
	c.Stdin = strings.NewReader("piped")
	res, err := r.Run(context.Background(), c)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Stdout != "piped" {
		t.Errorf("stdout = %q, want %q", res.Stdout, "piped")
	}

	res, err = r.Run(context.Background(), Command("pwd").In(dir))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(res.Stdout), strings.TrimPrefix(dir, "/private")) {
		t.Errorf("pwd = %q, want %q", res.Stdout, dir)
	}
}

func TestExecRunner_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewExecRunner(nil)
	_, err := r.Run(ctx, Command("sh", "-c", "sleep 5"))
	if !errors.Is(err, errors.ErrCodeAborted) || !stderrors.Is(err, context.Canceled) {
		t.Errorf("Run with canceled context error = %v, want ABORTED wrapping context.Canceled", err)
	}
}

func TestExecRunner_CanceledWhileRunning(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	r := NewExecRunner(nil)
	start := time.Now()
	// The shell's sleep child keeps stdout open after sh is killed.
	_, err := r.Run(ctx, Command("sh", "-c", "sleep 5"))
	elapsed := time.Since(start)

	if !errors.Is(err, errors.ErrCodeAborted) {
		t.Errorf("Run() error = %v, want ABORTED", err)
	}
	if !stderrors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() error = %v, want it to wrap context.DeadlineExceeded", err)
	}
	if elapsed > 4*time.Second {
		t.Errorf("Run() returned after %v, want it bounded by the wait delay", elapsed)
	}
}
