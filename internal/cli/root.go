package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/autogen/pkg/config"
	"github.com/matzehuels/autogen/pkg/errors"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	verbose    bool
	dir        string
	configFile string
}

func (c *CLI) bindGlobalFlags(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVarP(&c.flags.dir, "dir", "C", ".", "project directory")
	pf.StringVar(&c.flags.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/autogen/config.toml)")
}

// preRun applies the log level, resolves the project directory and loads the
// configuration layers before any command runs.
func (c *CLI) preRun(cmd *cobra.Command, args []string) error {
	level := LogInfo
	if c.flags.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	c.installHooks()

	dir, err := filepath.Abs(c.flags.dir)
	if err != nil {
		return err
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return errors.New(errors.ErrCodeFileNotFound, "project directory %s does not exist", dir)
	}
	c.flags.dir = dir

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: c.flags.configFile,
		ProjectDir: dir,
	})
	if err != nil {
		return err
	}
	c.config = cfg
	c.Logger.Debug("configuration loaded", "dir", dir, "remote", cfg.Remote, "branch", cfg.Branch)
	return nil
}

// stdinIsTerminal reports whether stdin is connected to a terminal.
// It is false in pipes and CI, where prompts cannot be answered.
func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
