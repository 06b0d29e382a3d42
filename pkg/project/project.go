package project

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autogen/pkg/config"
	"github.com/matzehuels/autogen/pkg/errors"
	"github.com/matzehuels/autogen/pkg/git"
	"github.com/matzehuels/autogen/pkg/requires"
	"github.com/matzehuels/autogen/pkg/shell"
	"github.com/matzehuels/autogen/pkg/version"
)

// ScriptsDir is the folder whose tracked files become setup() scripts.
const ScriptsDir = "scripts"

// Options configures a Project.
type Options struct {
	Config *config.Config // nil uses config.Default()
	Runner shell.Runner   // nil uses a shell.ExecRunner
	Logger *log.Logger    // nil uses log.Default()
}

// Project is the working directory of a Python project.
type Project struct {
	Dir    string
	Config *config.Config
	Runner shell.Runner
	Logger *log.Logger

	repo    *git.Repo
	tracked map[string]bool
}

// New opens the project in dir and snapshots its git-tracked files.
func New(ctx context.Context, dir string, opts Options) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = shell.NewExecRunner(opts.Logger)
	}

	p := &Project{
		Dir:    abs,
		Config: opts.Config,
		Runner: opts.Runner,
		Logger: opts.Logger,
		repo:   git.New(abs, opts.Runner),
	}

	files, err := p.repo.LsFiles(ctx)
	if err != nil {
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeCommandFailed
		}
		return nil, errors.Wrap(code, err, "list git files in %s", abs)
	}
	p.tracked = make(map[string]bool, len(files))
	for _, f := range files {
		p.tracked[f] = true
	}
	return p, nil
}

// Tracked reports whether the slash path rel is under version control.
func (p *Project) Tracked(rel string) bool {
	return p.tracked[rel]
}

// Defaults returns the setup() parameters computed from the project.
func (p *Project) Defaults(ctx context.Context) (Params, error) {
	packages, err := p.Packages()
	if err != nil {
		return nil, err
	}
	reqs, err := p.InstallRequires(ctx)
	if err != nil {
		return nil, err
	}
	data, err := p.PackageData()
	if err != nil {
		return nil, err
	}
	modules, err := p.PyModules()
	if err != nil {
		return nil, err
	}
	scripts, err := p.Scripts()
	if err != nil {
		return nil, err
	}

	var scriptsValue any
	if scripts != nil {
		scriptsValue = scripts
	}

	return Params{
		{"name", p.Name()},
		{"description", p.Description()},
		{"version", p.Version()},
		{"url", p.URL(ctx)},
		{"install_requires", reqs},
		{"packages", packages},
		{"package_data", data},
		{"include_package_data", true},
		{"py_modules", modules},
		{"scripts", scriptsValue},
	}, nil
}

// Name is the project folder name.
func (p *Project) Name() string {
	name := filepath.Base(p.Dir)
	if err := errors.ValidateDistributionName(name); err != nil {
		p.Logger.Warn("folder name is not a valid distribution name", "name", name, "err", errors.UserMessage(err))
	}
	return name
}

// Description is the first line of the readme, stripped of spaces and
// markdown heading marks. Without a readme it is the project name.
func (p *Project) Description() string {
	path, ok := p.readme()
	if ok {
		if line, err := firstLine(path); err == nil {
			return strings.Trim(line, " #\r\n")
		}
	}
	p.Logger.Warn("no readme provided, setting description=name")
	return p.Name()
}

func (p *Project) readme() (string, bool) {
	entries, err := os.ReadDir(p.Dir)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(strings.ToLower(e.Name()), "readme") {
			return filepath.Join(p.Dir, e.Name()), true
		}
	}
	return "", false
}

func firstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	r := bufio.NewReader(f)
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return line, nil
}

// Version is the content of the version file, or 0.0.0 without one.
func (p *Project) Version() string {
	v, ok, err := version.Read(p.Dir)
	if err != nil {
		p.Logger.Warn("cannot read version file", "err", err)
		return version.Default
	}
	if !ok {
		p.Logger.Warn("no version file, using default", "version", version.Default)
	}
	return v
}

// URL is the web address of the origin remote, or "" when it cannot be read.
func (p *Project) URL(ctx context.Context) string {
	remote, err := p.repo.RemoteURL(ctx, p.Config.Remote)
	if err != nil {
		p.Logger.Debug("no remote url", "remote", p.Config.Remote, "err", err)
		return ""
	}
	return git.HTTPURL(remote)
}

// InstallRequires runs the dependency scanner and returns the cleaned list.
func (p *Project) InstallRequires(ctx context.Context) ([]string, error) {
	all, err := FindPackages(p.Dir, nil)
	if err != nil {
		return nil, err
	}
	s := &requires.Scanner{
		Dir:     p.Dir,
		Command: p.Config.Pipreqs,
		Runner:  p.Runner,
		Options: requires.Options{
			WindowsOnly: p.Config.WindowsOnly,
			Exclude:     p.Config.Exclude,
		},
		Logger: p.Logger,
	}
	return s.Infer(ctx, all)
}

// Packages lists the project's packages, excluding underscore-prefixed ones.
func (p *Project) Packages() ([]string, error) {
	return FindPackages(p.Dir, []string{"_*"})
}

// PackageData maps each package folder to its tracked non-Python files.
func (p *Project) PackageData() (map[string][]string, error) {
	packages, err := p.Packages()
	if err != nil {
		return nil, err
	}
	data := make(map[string][]string)
	for _, pkg := range packages {
		folder := strings.ReplaceAll(pkg, ".", "/")
		files, err := p.trackedFiles(folder, func(name string) bool {
			return !strings.HasSuffix(name, ".py")
		})
		if err != nil {
			return nil, err
		}
		if len(files) > 0 {
			data[folder] = files
		}
	}
	return data, nil
}

// PyModules lists tracked top-level modules other than setup.py, without
// their extension.
func (p *Project) PyModules() ([]string, error) {
	files, err := p.trackedFiles("", func(name string) bool {
		return strings.HasSuffix(name, ".py") && name != "setup.py"
	})
	if err != nil {
		return nil, err
	}
	modules := make([]string, len(files))
	for i, f := range files {
		modules[i] = strings.TrimSuffix(f, ".py")
	}
	return modules, nil
}

// Scripts lists the tracked files in the scripts folder as slash paths.
// It returns nil when the folder does not exist.
func (p *Project) Scripts() ([]string, error) {
	info, err := os.Stat(filepath.Join(p.Dir, ScriptsDir))
	if err != nil || !info.IsDir() {
		return nil, nil
	}
	files, err := p.trackedFiles(ScriptsDir, func(string) bool { return true })
	if err != nil {
		return nil, err
	}
	scripts := make([]string, len(files))
	for i, f := range files {
		scripts[i] = ScriptsDir + "/" + f
	}
	return scripts, nil
}

// trackedFiles returns the sorted names of regular files directly inside the
// slash-separated folder that are tracked and accepted by keep.
func (p *Project) trackedFiles(folder string, keep func(name string) bool) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(p.Dir, filepath.FromSlash(folder)))
	if err != nil {
		return nil, err
	}
	files := []string{}
	for _, e := range entries {
		if !e.Type().IsRegular() || !keep(e.Name()) {
			continue
		}
		rel := e.Name()
		if folder != "" {
			rel = folder + "/" + e.Name()
		}
		if p.Tracked(rel) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
