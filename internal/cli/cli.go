// Package cli implements the autogen command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/autogen/pkg/buildinfo"
	"github.com/matzehuels/autogen/pkg/config"
	"github.com/matzehuels/autogen/pkg/httputil"
	"github.com/matzehuels/autogen/pkg/integrations/pypi"
	"github.com/matzehuels/autogen/pkg/project"
	"github.com/matzehuels/autogen/pkg/setupfile"
	"github.com/matzehuels/autogen/pkg/shell"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "autogen"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer    // command output (listings, status lines)
	In     io.Reader    // answers to prompts
	Runner shell.Runner // nil runs real processes

	// Interactive reports whether prompts and spinners may be shown.
	Interactive func() bool

	flags  globalFlags
	config *config.Config
}

// New creates a new CLI instance with a default logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:      newLogger(w, level),
		Out:         os.Stdout,
		In:          os.Stdin,
		Interactive: stdinIsTerminal,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Autogen automates Python package housekeeping",
		Long: `Autogen generates setup.py for the Python project in the current directory,
infers its dependencies, tracks its version file and publishes releases to git
and the package index.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.preRun,
	}

	root.SetVersionTemplate(appName + " " + buildinfo.String() + "\n")
	c.bindGlobalFlags(root)

	root.AddCommand(c.setupCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.requiresCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.releaseCommand())
	root.AddCommand(c.condaCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Factories
// =============================================================================

func (c *CLI) runner() shell.Runner {
	if c.Runner != nil {
		return c.Runner
	}
	return shell.NewExecRunner(c.Logger)
}

// openProject snapshots the project in the working directory.
func (c *CLI) openProject(cmd *cobra.Command) (*project.Project, error) {
	return project.New(cmd.Context(), c.flags.dir, project.Options{
		Config: c.config,
		Runner: c.runner(),
		Logger: c.Logger,
	})
}

// formatter returns the setup.py formatter chosen by configuration.
func (c *CLI) formatter() setupfile.Formatter {
	if c.config.Formatter == "" {
		return setupfile.BuiltinFormatter{}
	}
	return &setupfile.CommandFormatter{
		Command: c.config.Formatter,
		Runner:  c.runner(),
		Logger:  c.Logger,
	}
}

// newCache opens the index response cache. Failures disable caching.
func (c *CLI) newCache() *httputil.Cache {
	dir, err := config.CacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "err", err)
		return nil
	}
	cache, err := httputil.NewCache(dir, c.config.CacheTTL)
	if err != nil {
		c.Logger.Debug("cache disabled", "err", err)
		return nil
	}
	return cache
}

// indexClient returns a client for the configured package index.
func (c *CLI) indexClient() *pypi.Client {
	return pypi.NewClient(c.newCache(), c.config.IndexURL)
}
