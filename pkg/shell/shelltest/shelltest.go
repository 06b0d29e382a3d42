// Package shelltest provides a scripted shell.Runner for tests.
package shelltest

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/matzehuels/autogen/pkg/shell"
)

// Response is the scripted outcome of a command.
type Response struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error                   // returned as-is when set
	Do       func(c shell.Cmd) error // side effect run before responding (optional)
	Echo     bool                    // copy stdin to Stdout, like a formatter with nothing to fix
}

// Runner records every command it receives and answers from a script keyed by
// command-line prefix. Unscripted commands succeed with empty output.
type Runner struct {
	mu        sync.Mutex
	responses []scripted
	Calls     []shell.Cmd
	Stdins    []string
}

type scripted struct {
	prefix string
	resp   Response
}

// New creates an empty Runner.
func New() *Runner {
	return &Runner{}
}

// On scripts the response for commands whose String() starts with prefix.
// Later registrations take precedence.
func (r *Runner) On(prefix string, resp Response) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append([]scripted{{prefix: prefix, resp: resp}}, r.responses...)
	return r
}

// Run implements shell.Runner.
func (r *Runner) Run(ctx context.Context, c shell.Cmd) (shell.Result, error) {
	var stdin string
	if c.Stdin != nil {
		data, _ := io.ReadAll(c.Stdin)
		stdin = string(data)
	}

	r.mu.Lock()
	r.Calls = append(r.Calls, c)
	r.Stdins = append(r.Stdins, stdin)
	var resp Response
	line := c.String()
	for _, s := range r.responses {
		if strings.HasPrefix(line, s.prefix) {
			resp = s.resp
			break
		}
	}
	r.mu.Unlock()

	if resp.Do != nil {
		if err := resp.Do(c); err != nil {
			return shell.Result{ExitCode: 1}, err
		}
	}
	res := shell.Result{Stdout: resp.Stdout, Stderr: resp.Stderr, ExitCode: resp.ExitCode}
	if resp.Echo {
		res.Stdout = stdin
	}
	if resp.Err != nil {
		return res, resp.Err
	}
	if resp.ExitCode != 0 {
		return res, shell.Failed(c, res)
	}
	return res, nil
}

// Lines returns the recorded command lines in order.
func (r *Runner) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.String()
	}
	return out
}
