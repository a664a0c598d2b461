package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arbkit/arbitrum-mcp-tools/internal/platform"
)

func init() {
	rootCmd.AddCommand(newUninstallCmd())
}

func newUninstallCmd() *cobra.Command {
	var platformIDs []string
	var scopeValue string
	var yes bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the MCP server from one or more AI tools' config files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := parseScope(scopeValue)
			if err != nil {
				return err
			}

			operations := newOperations()

			if len(platformIDs) == 0 && !yes && canUseInteractiveUI(cmd.InOrStdin(), cmd.OutOrStdout()) {
				return runUninstallWizardSurvey(cmd, operations)
			}

			descriptors, err := resolvePlatforms(operations, platformIDs)
			if err != nil {
				return err
			}

			return executeUninstall(cmd.OutOrStdout(), operations, descriptors, scope, false)
		},
	}

	cmd.Flags().StringArrayVar(&platformIDs, "platform", nil, "Uninstall from specific platform id(s); can be repeated")
	cmd.Flags().StringVar(&scopeValue, "scope", string(platform.ScopeGlobal), "Config scope: global or local")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the interactive wizard and apply directly")

	return cmd
}

func runUninstallWizardSurvey(cmd *cobra.Command, operations *platform.Operations) error {
	output := cmd.OutOrStdout()

	fmt.Fprintln(output, "Uninstall Wizard")
	fmt.Fprintln(output)
	fmt.Fprintln(output, "Step 1/3: Platforms")

	descriptors, err := pickPlatformsSurvey(cmd, operations)
	if err != nil {
		return err
	}

	fmt.Fprintln(output)
	fmt.Fprintln(output, "Step 2/3: Scope")

	scope, err := pickScopeSurvey(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintln(output)
	fmt.Fprintf(output, "Platforms: %s\n", platformDisplayNames(descriptors))
	fmt.Fprintf(output, "Scope: %s\n", scope)

	confirmed, err := confirmSurvey(cmd, "Apply changes?")
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(output, "Uninstall cancelled.")
		return nil
	}

	fmt.Fprintln(output)
	fmt.Fprintln(output, "Step 3/3: Apply")

	return executeUninstall(output, operations, descriptors, scope, true)
}

func executeUninstall(
	output io.Writer,
	operations *platform.Operations,
	descriptors []platform.Descriptor,
	scope platform.Scope,
	interactive bool,
) error {
	fmt.Fprintf(output, "Uninstalling %q from: %s\n", platform.ServerName, platformDisplayNames(descriptors))

	uninstallErrors := make([]error, 0)
	for _, descriptor := range descriptors {
		result, removed := operations.Uninstall(descriptor, scope)
		if !result.Success {
			fmt.Fprintf(output, "  %s: %s (%v)\n", descriptor.DisplayName, color.RedString("failed"), result.Err)
			uninstallErrors = append(uninstallErrors, fmt.Errorf("platform %q: %w", descriptor.ID, result.Err))
			continue
		}

		if !removed {
			fmt.Fprintf(output, "  %s: not installed\n", descriptor.DisplayName)
			continue
		}

		fmt.Fprintf(output, "  %s: %s (%s)\n", descriptor.DisplayName, color.GreenString("removed"), result.Path)
	}

	if interactive {
		return nil
	}

	if len(uninstallErrors) == len(descriptors) && len(uninstallErrors) > 0 {
		return fmt.Errorf("failed to uninstall from every selected platform: %w", errors.Join(uninstallErrors...))
	}

	return nil
}
