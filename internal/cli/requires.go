package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// requiresCommand creates the requires command.
func (c *CLI) requiresCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "requires",
		Short: "Infer install_requires from the project's imports",
		Long: `Run pipreqs over the project, rewrite requirements.txt and print the
cleaned dependency list that setup.py would declare.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.openProject(cmd)
			if err != nil {
				return err
			}
			prog := newProgress(c.Logger)
			reqs, err := p.InstallRequires(cmd.Context())
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("inferred %d requirements", len(reqs)))
			for _, r := range reqs {
				c.printLine(r)
			}
			return nil
		},
	}
}
