package cli

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/autogen/pkg/errors"
	"github.com/matzehuels/autogen/pkg/release"
)

// releaseOpts holds flags for the release command.
type releaseOpts struct {
	dryRun bool
	check  bool
	yes    bool
}

// releaseCommand creates the release command.
func (c *CLI) releaseCommand() *cobra.Command {
	var opts releaseOpts

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Commit, tag, push, build and upload the current version",
		Long: `Publish the version in the version file.

Runs, stopping at the first failure:

  git commit -a -m 'version update'
  git tag <version>
  git push
  git push --tags <remote> <branch>
  python setup.py clean --all sdist bdist_wheel
  twine upload dist/*<version>*

Completed steps are not undone when a later one fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRelease(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the commands without running them")
	cmd.Flags().BoolVar(&opts.check, "check", false, "refuse if the version is already on the package index")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (c *CLI) runRelease(cmd *cobra.Command, opts releaseOpts) error {
	ctx := cmd.Context()
	runID := uuid.NewString()
	logger := c.Logger.With("run", runID)

	p, err := c.openProject(cmd)
	if err != nil {
		return err
	}
	v := p.Version()

	r := &release.Releaser{
		Dir:    p.Dir,
		Name:   p.Name(),
		Config: c.config,
		Runner: c.runner(),
		Logger: logger,
	}
	if opts.check || c.config.CheckIndex {
		r.Index = c.indexClient()
		if err := r.Check(ctx, v); err != nil {
			return err
		}
		logger.Debug("version not yet published", "version", v)
	}

	steps, err := r.Plan(v)
	if err != nil {
		return err
	}
	c.printLine(StyleTitle.Render(fmt.Sprintf("Release %s %s", r.Name, v)))
	for i, s := range steps {
		c.printCommand(i, s.Name, s.Cmd.String())
	}
	if opts.dryRun {
		return nil
	}

	interactive := c.Interactive != nil && c.Interactive()
	if !opts.yes && interactive {
		ok, err := confirm(c.In, os.Stderr, fmt.Sprintf("Release %s %s?", r.Name, v))
		if err != nil {
			return err
		}
		if !ok {
			c.printWarning("Release cancelled")
			return nil
		}
	}

	logger.Info("starting release", "version", v)
	var spin *Spinner
	stop := func(err error) {
		if spin == nil {
			return
		}
		switch {
		case spin.Cancelled():
			spin.StopWithError(spin.label + " interrupted")
		case err != nil:
			spin.StopWithError(errors.UserMessage(err))
		default:
			spin.StopWithSuccess(spin.label)
		}
		spin = nil
	}
	r.OnStep = func(i int, s release.Step) {
		stop(nil)
		if interactive {
			spin = newSpinner(ctx, os.Stderr, s.Name)
			spin.Start()
		}
	}

	if err := r.Run(ctx, v); err != nil {
		stop(err)
		return err
	}
	stop(nil)
	c.printSuccess("Released %s %s", r.Name, v)
	return nil
}

// condaCommand creates the conda command.
func (c *CLI) condaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "conda",
		Short: "Publish to a conda channel (not implemented)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &release.Releaser{Dir: c.flags.dir, Config: c.config, Runner: c.runner(), Logger: c.Logger}
			return r.Conda(cmd.Context())
		},
	}
}
