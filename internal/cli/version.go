package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/autogen/pkg/version"
)

// versionCommand creates the version command and its bump subcommand.
func (c *CLI) versionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the project version",
		Long:  `Print the content of the project's version file (0.0.0 when it does not exist).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok, err := version.Read(c.flags.dir)
			if err != nil {
				return err
			}
			if !ok {
				c.Logger.Warn("no version file, using default", "version", v)
			}
			c.printLine(v)
			return nil
		},
	}

	cmd.AddCommand(c.versionBumpCommand())
	return cmd
}

// versionBumpCommand creates the "version bump" subcommand.
func (c *CLI) versionBumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bump <major|minor|patch|0|1|2>",
		Short: "Increment the project version",
		Long: `Increment one level of the version file and reset the levels after it.

  autogen version bump minor   # 1.2.3 -> 1.3.0`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"major", "minor", "patch"},
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := version.ParseLevel(args[0])
			if err != nil {
				return err
			}
			prev, _, err := version.Read(c.flags.dir)
			if err != nil {
				return err
			}
			next, err := version.BumpFile(c.flags.dir, level)
			if err != nil {
				return err
			}
			c.printSuccess("Bumped %s version %s %s %s", level, prev, StyleDim.Render(iconArrow), next)
			return nil
		},
	}
}
