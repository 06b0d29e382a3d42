package cli

import (
	stderrors "errors"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/autogen/pkg/integrations"
	"github.com/matzehuels/autogen/pkg/setupfile"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	var index, refresh bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the metadata setup.py would be generated with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := c.openProject(cmd)
			if err != nil {
				return err
			}
			params, err := p.Defaults(ctx)
			if err != nil {
				return err
			}

			c.printLine(StyleTitle.Render(p.Name()))
			for _, kv := range params {
				value := displayValue(kv.Value)
				if kv.Key == "url" && value != "" {
					value = StyleLink.Render(value)
				}
				c.printKeyValue(kv.Key, value)
			}

			if !index {
				return nil
			}
			info, err := c.indexClient().FetchProject(ctx, p.Name(), refresh)
			if stderrors.Is(err, integrations.ErrNotFound) {
				c.printKeyValue("published", StyleDim.Render("not on the index"))
				return nil
			}
			if err != nil {
				return err
			}
			c.printKeyValue("published", info.Version)
			return nil
		},
	}

	cmd.Flags().BoolVar(&index, "index", false, "also show the latest version on the package index")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the index response cache")
	return cmd
}

// displayValue renders a setup() parameter for humans. Lists are joined with
// commas; everything else uses the Python literal.
func displayValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []string:
		if len(v) == 0 {
			return StyleDim.Render("(none)")
		}
		return strings.Join(v, ", ")
	case map[string][]string:
		if len(v) == 0 {
			return StyleDim.Render("(none)")
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + strings.Join(v[k], ", ")
		}
		return strings.Join(parts, "; ")
	}
	return setupfile.Literal(v)
}
