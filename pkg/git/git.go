// Package git wraps the handful of git commands autogen needs. Queries
// (tracked files, remote URL) run immediately; the commit/tag/push commands
// of a release are returned as shell.Cmd values so the release pipeline can
// show them before running them.
package git

import (
	"context"
	"strings"

	"github.com/matzehuels/autogen/pkg/shell"
)

// Repo runs git in a working directory.
type Repo struct {
	Dir    string
	Runner shell.Runner
}

// New returns a Repo for dir using runner.
func New(dir string, runner shell.Runner) *Repo {
	return &Repo{Dir: dir, Runner: runner}
}

func (r *Repo) git(ctx context.Context, args ...string) (string, error) {
	res, err := r.Runner.Run(ctx, r.Command(args...))
	return res.Stdout, err
}

// LsFiles returns the slash-separated paths of all tracked files, relative to
// the repository root.
func (r *Repo) LsFiles(ctx context.Context) ([]string, error) {
	out, err := r.git(ctx, "ls-files")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// RemoteURL returns the configured URL of remote, without the trailing
// newline.
func (r *Repo) RemoteURL(ctx context.Context, remote string) (string, error) {
	out, err := r.git(ctx, "remote", "get-url", remote)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\r\n"), nil
}

// Command builds a git invocation in the repository directory without
// running it.
func (r *Repo) Command(args ...string) shell.Cmd {
	return shell.Command("git", args...).In(r.Dir)
}

// CommitAllCmd commits every modified tracked file with message.
func (r *Repo) CommitAllCmd(message string) shell.Cmd {
	return r.Command("commit", "-a", "-m", message)
}

// TagCmd creates a lightweight tag.
func (r *Repo) TagCmd(name string) shell.Cmd {
	return r.Command("tag", name)
}

// PushCmd pushes the current branch to its upstream.
func (r *Repo) PushCmd() shell.Cmd {
	return r.Command("push")
}

// PushTagsCmd pushes branch and all tags to remote.
func (r *Repo) PushTagsCmd(remote, branch string) shell.Cmd {
	return r.Command("push", "--tags", remote, branch)
}

// HTTPURL converts a remote address into the browsable project URL used in
// packaging metadata. "ssh://git@host/path" and scp-style "git@host:path"
// both become "https://host/path" without a trailing ".git"; http(s) remotes are returned unchanged.
func HTTPURL(remote string) string {
	switch {
	case strings.HasPrefix(remote, "ssh://git@"):
		return "https://" + strings.TrimSuffix(strings.TrimPrefix(remote, "ssh://git@"), ".git")
	case strings.HasPrefix(remote, "git@"):
		host, path, ok := strings.Cut(strings.TrimPrefix(remote, "git@"), ":")
		if !ok {
			return "https://" + host
		}
		return "https://" + host + "/" + strings.TrimSuffix(strings.TrimPrefix(path, "/"), ".git")
	}
	return remote
}
