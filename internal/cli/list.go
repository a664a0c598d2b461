package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arbkit/arbitrum-mcp-tools/internal/platform"
)

func init() {
	rootCmd.AddCommand(newListCmd())
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List supported platforms and their install status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printPlatformsList(cmd.OutOrStdout(), newOperations())
			return nil
		},
	}
}

type platformStatusRow struct {
	id       string
	name     string
	detected string
	global   string
	local    string
}

func printPlatformsList(output io.Writer, operations *platform.Operations) {
	fmt.Fprintln(output, "Platforms:")
	fmt.Fprintln(output)

	rows := make([]platformStatusRow, 0)
	maxIDWidth := len("platform")
	maxNameWidth := len("name")

	for _, descriptor := range operations.Registry().Descriptors() {
		row := platformStatusRow{
			id:       descriptor.ID,
			name:     descriptor.DisplayName,
			detected: yesNo(operations.IsDetected(descriptor)),
			global:   yesNo(operations.IsInstalled(descriptor, platform.ScopeGlobal)),
			local:    yesNo(operations.IsInstalled(descriptor, platform.ScopeLocal)),
		}

		rows = append(rows, row)

		if len(row.id) > maxIDWidth {
			maxIDWidth = len(row.id)
		}

		if len(row.name) > maxNameWidth {
			maxNameWidth = len(row.name)
		}
	}

	fmt.Fprintf(output, "  %-*s  %-*s  %-8s  %-6s  %s\n", maxIDWidth, "platform", maxNameWidth, "name", "detected", "global", "local")

	for _, row := range rows {
		fmt.Fprintf(output, "  %-*s  %-*s  %-8s  %-6s  %s\n", maxIDWidth, row.id, maxNameWidth, row.name, row.detected, row.global, row.local)
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}
