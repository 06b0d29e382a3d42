package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/autogen/pkg/setupfile"
)

// setupOpts holds flags for the setup command.
type setupOpts struct {
	stdout bool
}

// setupCommand creates the setup command.
func (c *CLI) setupCommand() *cobra.Command {
	var opts setupOpts

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Generate setup.py from the project layout",
		Long: `Generate setup.py from the project layout.

The parameters passed to setup() are recomputed from the directory, git and
pipreqs on every run. Lines between the EDIT BELOW / EDIT ABOVE markers are
kept as they are.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSetup(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "print the result instead of writing setup.py")
	return cmd
}

func (c *CLI) runSetup(cmd *cobra.Command, opts setupOpts) error {
	ctx := cmd.Context()
	p, err := c.openProject(cmd)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	params, err := p.Defaults(ctx)
	if err != nil {
		return err
	}
	prog.done("collected project metadata")

	gen := &setupfile.Generator{Dir: p.Dir, Formatter: c.formatter(), Logger: c.Logger}
	if opts.stdout {
		out, err := gen.Preview(ctx, params)
		if err != nil {
			return err
		}
		_, err = c.Out.Write(out)
		return err
	}

	changed, err := gen.Generate(ctx, params)
	if err != nil {
		return err
	}
	if !changed {
		c.printInfo("%s is up to date", setupfile.FileName)
		return nil
	}
	c.printSuccess("Wrote %s", setupfile.FileName)
	c.printFile(gen.Path())
	return nil
}
