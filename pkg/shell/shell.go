// Package shell runs external programs on behalf of autogen.
//
// All real work (version control, dependency scanning, formatting, building
// and uploading distributions) is delegated to other tools. [Runner] is the
// single seam through which those tools are invoked, so tests can substitute
// a recording fake (see package shelltest).
//
// Execution is synchronous. A non-zero exit becomes an error carrying the
// command line and the tool's stderr; there is no retry and no timeout, but
// the context is honoured so Ctrl-C stops a running tool.
package shell

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/shell"
	"mvdan.cc/sh/v3/syntax"

	"github.com/matzehuels/autogen/pkg/errors"
	"github.com/matzehuels/autogen/pkg/observability"
)

// Cmd describes one invocation of an external program.
type Cmd struct {
	Name  string    // executable, looked up on PATH
	Args  []string  // arguments, passed verbatim
	Dir   string    // working directory (optional)
	Stdin io.Reader // standard input (optional)
}

// Command builds a Cmd from a name and arguments.
func Command(name string, args ...string) Cmd {
	return Cmd{Name: name, Args: args}
}

// In returns a copy of c that runs in dir.
func (c Cmd) In(dir string) Cmd {
	c.Dir = dir
	return c
}

// String renders the command line with shell quoting where needed.
func (c Cmd) String() string {
	words := append([]string{c.Name}, c.Args...)
	for i, w := range words {
		if q, err := syntax.Quote(w, syntax.LangBash); err == nil && q != w {
			words[i] = q
		}
	}
	return strings.Join(words, " ")
}

// Parse splits a configured command line into a Cmd using POSIX shell
// quoting rules. Environment variables are expanded. Extra arguments are
// appended after the parsed ones.
func Parse(line string, extra ...string) (Cmd, error) {
	fields, err := shell.Fields(line, nil)
	if err != nil {
		return Cmd{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse command %q", line)
	}
	if len(fields) == 0 {
		return Cmd{}, errors.New(errors.ErrCodeInvalidConfig, "empty command")
	}
	return Cmd{Name: fields[0], Args: append(fields[1:], extra...)}, nil
}

// Result holds the captured output of a finished command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes commands.
type Runner interface {
	// Run executes c and waits for it to finish. A non-zero exit status is
	// reported as a COMMAND_FAILED error alongside the captured Result.
	Run(ctx context.Context, c Cmd) (Result, error)
}

// DefaultWaitDelay bounds how long Run waits for output pipes to close after
// a cancelled command has been killed.
const DefaultWaitDelay = time.Second

// ExecRunner is the production Runner backed by os/exec. Cancelling the
// context kills the process and Run returns an ABORTED error wrapping
// ctx.Err().
type ExecRunner struct {
	Logger    *log.Logger
	WaitDelay time.Duration // zero means DefaultWaitDelay
}

// NewExecRunner creates an ExecRunner. A nil logger uses log.Default().
func NewExecRunner(logger *log.Logger) *ExecRunner {
	if logger == nil {
		logger = log.Default()
	}
	return &ExecRunner{Logger: logger}
}

// Run executes the command and captures stdout/stderr.
func (r *ExecRunner) Run(ctx context.Context, c Cmd) (Result, error) {
	r.Logger.Debug("exec", "cmd", c.String(), "dir", c.Dir)

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	// Grandchildren such as the ssh behind git push can hold the pipes open
	// after the direct child is killed.
	cmd.WaitDelay = r.waitDelay()
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Stdin = c.Stdin
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}

	hooks := observability.Command()
	hooks.OnCommandStart(ctx, c.Name, c.Args)
	start := time.Now()
	res, err := r.wait(ctx, cmd, c, &stdout, &stderr)
	hooks.OnCommandComplete(ctx, c.Name, res.ExitCode, time.Since(start), err)
	return res, err
}

func (r *ExecRunner) waitDelay() time.Duration {
	if r.WaitDelay > 0 {
		return r.WaitDelay
	}
	return DefaultWaitDelay
}

func (r *ExecRunner) wait(ctx context.Context, cmd *exec.Cmd, c Cmd, stdout, stderr *bytes.Buffer) (Result, error) {
	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}
	if ctx.Err() != nil {
		res.ExitCode = -1
		return res, errors.Wrap(errors.ErrCodeAborted, ctx.Err(), "%s", c.String())
	}

	if stderrors.Is(err, exec.ErrNotFound) {
		res.ExitCode = -1
		return res, errors.Wrap(errors.ErrCodeCommandNotFound, err, "%s is not installed or not on PATH", c.Name)
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, Failed(c, res)
	}
	res.ExitCode = -1
	return res, errors.Wrap(errors.ErrCodeCommandFailed, err, "%s", c.String())
}

// Failed builds the COMMAND_FAILED error for a command that exited non-zero.
// The last line of stderr, when present, is used as the cause.
func Failed(c Cmd, res Result) error {
	msg := strings.TrimSpace(res.Stderr)
	if i := strings.LastIndexByte(msg, '\n'); i >= 0 {
		msg = msg[i+1:]
	}
	if msg == "" {
		return errors.New(errors.ErrCodeCommandFailed, "%s exited with status %d", c.String(), res.ExitCode)
	}
	return errors.Wrap(errors.ErrCodeCommandFailed, stderrors.New(msg), "%s exited with status %d", c.String(), res.ExitCode)
}
