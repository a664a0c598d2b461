package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arbkit/arbitrum-mcp-tools/internal/platform"
)

func init() {
	rootCmd.AddCommand(newInstallCmd())
}

func newInstallCmd() *cobra.Command {
	var platformIDs []string
	var scopeValue string
	var yes bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Add the MCP server to one or more AI tools' config files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := parseScope(scopeValue)
			if err != nil {
				return err
			}

			operations := newOperations()

			if len(platformIDs) == 0 && !yes && canUseInteractiveUI(cmd.InOrStdin(), cmd.OutOrStdout()) {
				return runInstallWizardSurvey(cmd, operations)
			}

			descriptors, err := resolvePlatforms(operations, platformIDs)
			if err != nil {
				return err
			}

			return executeInstall(cmd.OutOrStdout(), operations, descriptors, scope, false)
		},
	}

	cmd.Flags().StringArrayVar(&platformIDs, "platform", nil, "Install for specific platform id(s); can be repeated")
	cmd.Flags().StringVar(&scopeValue, "scope", string(platform.ScopeGlobal), "Config scope: global or local")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the interactive wizard and apply directly")

	return cmd
}

func runInstallWizardSurvey(cmd *cobra.Command, operations *platform.Operations) error {
	output := cmd.OutOrStdout()

	fmt.Fprintln(output, "Install Wizard")
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
		fmt.Fprintln(output, "Install cancelled.")
		return nil
	}

	fmt.Fprintln(output)
	fmt.Fprintln(output, "Step 3/3: Apply")

	// Wizard runs report per-platform outcomes and always exit cleanly.
	return executeInstall(output, operations, descriptors, scope, true)
}

func executeInstall(
	output io.Writer,
	operations *platform.Operations,
	descriptors []platform.Descriptor,
	scope platform.Scope,
	interactive bool,
) error {
	fmt.Fprintf(output, "Installing %q for: %s\n", platform.ServerName, platformDisplayNames(descriptors))

	installErrors := make([]error, 0)
	for _, descriptor := range descriptors {
		warnUnparsableConfig(output, operations, descriptor, scope)

		result := operations.Install(descriptor, scope)
		if !result.Success {
			fmt.Fprintf(output, "  %s: %s (%v)\n", descriptor.DisplayName, color.RedString("failed"), result.Err)
			installErrors = append(installErrors, fmt.Errorf("platform %q: %w", descriptor.ID, result.Err))
			continue
		}

		fmt.Fprintf(output, "  %s: %s (%s)\n", descriptor.DisplayName, color.GreenString("configured"), result.Path)
	}

	if interactive {
		return nil
	}

	if len(installErrors) == len(descriptors) && len(installErrors) > 0 {
		return fmt.Errorf("failed to install on every selected platform: %w", errors.Join(installErrors...))
	}

	return nil
}

// warnUnparsableConfig flags an existing config file the codec cannot
// parse. Install still proceeds and rewrites the file from an empty
// document, which drops whatever the unparsable file held.
func warnUnparsableConfig(output io.Writer, operations *platform.Operations, descriptor platform.Descriptor, scope platform.Scope) {
	path, err := operations.ConfigPath(descriptor, scope)
	if err != nil {
		return
	}

	if _, err := os.Stat(path); err != nil {
		return
	}

	if _, err := platform.CodecFor(descriptor.Format).ReadStrict(path); err != nil {
		fmt.Fprintf(output, "  %s: %s\n", descriptor.DisplayName, color.YellowString("warning: %s is not parsable and will be rewritten", path))
	}
}
