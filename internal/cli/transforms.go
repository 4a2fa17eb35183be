package cli

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pseudoloc/pkg/transform"
)

// transformsCommand lists the registered transforms.
func (c *CLI) transformsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "transforms",
		Short: "List available transforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			active, err := cfg.TransformIDs()
			if err != nil {
				return err
			}
			if len(active) == 0 {
				active = transform.Defaults()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, transformsTable(active).Render())
			fmt.Fprintln(out)
			printDetail(out, "Example: %s", transform.Apply("Hello {0}!", active))
			return nil
		},
	}
}

// transformsTable renders every transform, marking those in active.
func transformsTable(active []transform.ID) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	all := transform.All()
	rows := make([][]string, 0, len(all))
	for _, info := range all {
		mark := ""
		if slices.Contains(active, info.ID) {
			mark = iconSuccess
		}
		rows = append(rows, []string{"-" + info.Flag, "--" + info.Name, string(info.ID), mark, info.Summary})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Flag", "Long flag", "Name", "Active", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			style := cellStyle
			switch col {
			case 0, 1:
				style = style.Foreground(colorCyan)
			case 3:
				style = style.Foreground(colorGreen)
			case 4:
				style = style.Foreground(colorGray)
			}
			return style
		})
}
