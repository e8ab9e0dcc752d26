package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/importcheck/internal/checker"
	"github.com/Sumatoshi-tech/importcheck/internal/render"
)

// NewRulesCommand creates the command that lists the import rules.
func NewRulesCommand() *cobra.Command {
	var format string

	cobraCmd := &cobra.Command{
		Use:   "rules",
		Short: "List the import rules with examples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			return render.Rules(cmd.OutOrStdout(), checker.Rules(), f)
		},
	}

	cobraCmd.Flags().StringVarP(&format, "format", "f", string(render.FormatText), "output format: text, json, yaml, table")

	return cobraCmd
}
