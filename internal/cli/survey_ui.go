package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	surveycore "github.com/AlecAivazis/survey/v2/core"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arbkit/arbitrum-mcp-tools/internal/platform"
)

var askSurveyOne = func(prompt survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	return survey.AskOne(prompt, response, opts...)
}

func canUseInteractiveUI(input io.Reader, output io.Writer) bool {
	inputFile, inputOK := input.(*os.File)
	outputFile, outputOK := output.(*os.File)
	if !inputOK || !outputOK {
		return false
	}

	return term.IsTerminal(int(inputFile.Fd())) && term.IsTerminal(int(outputFile.Fd()))
}

// pickPlatformsSurvey asks which platforms to act on. Detected platforms
// are listed first and pre-selected.
func pickPlatformsSurvey(cmd *cobra.Command, operations *platform.Operations) ([]platform.Descriptor, error) {
	labels := make([]string, 0)
	preselected := make([]string, 0)
	labelToDescriptor := make(map[string]platform.Descriptor)

	descriptors := operations.Registry().Descriptors()

	for _, detectedOnly := range []bool{true, false} {
		for _, descriptor := range descriptors {
			detected := operations.IsDetected(descriptor)
			if detected != detectedOnly {
				continue
			}

			label := fmt.Sprintf("%s (%s)", descriptor.DisplayName, descriptor.ID)
			if detected {
				label += " [detected]"
				preselected = append(preselected, label)
			}

			labels = append(labels, label)
			labelToDescriptor[label] = descriptor
		}
	}

	for {
		var selectedLabels []string
		printSurveyHint(cmd.OutOrStdout(), "Use Up/Down arrows, Space to toggle, Enter to confirm. Type to filter.")

		prompt := &survey.MultiSelect{
			Message:  "Select platforms",
			Options:  labels,
			Default:  preselected,
			PageSize: 8,
			Filter: func(filter string, value string, _ int) bool {
				if strings.TrimSpace(filter) == "" {
					return true
				}

				return strings.Contains(strings.ToLower(value), strings.ToLower(filter))
			},
			FilterMessage: "Filter:",
		}

		if err := askSurveyPrompt(cmd, prompt, &selectedLabels); err != nil {
			return nil, fmt.Errorf("read platform selection: %w", err)
		}

		if len(selectedLabels) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Select at least one platform.")
			continue
		}

		selected := make([]platform.Descriptor, 0, len(selectedLabels))
		for _, label := range selectedLabels {
			descriptor, found := labelToDescriptor[label]
			if !found {
				return nil, fmt.Errorf("selected platform %q not found", label)
			}

			selected = append(selected, descriptor)
		}

		return selected, nil
	}
}

func pickScopeSurvey(cmd *cobra.Command) (platform.Scope, error) {
	choice := ""
	printSurveyHint(cmd.OutOrStdout(), "Use Up/Down arrows, Enter to select.")

	prompt := &survey.Select{
		Message:  "Config scope",
		Options:  []string{"global (user-wide config)", "local (current project)"},
		Default:  "global (user-wide config)",
		PageSize: 2,
	}

	if err := askSurveyPrompt(cmd, prompt, &choice); err != nil {
		return "", fmt.Errorf("read scope selection: %w", err)
	}

	if strings.HasPrefix(choice, "local") {
		return platform.ScopeLocal, nil
	}

	return platform.ScopeGlobal, nil
}

func confirmSurvey(cmd *cobra.Command, message string) (bool, error) {
	choice := ""
	printSurveyHint(cmd.OutOrStdout(), "Use Up/Down arrows, Enter to select.")

	prompt := &survey.Select{
		Message:  message,
		Options:  []string{"Yes", "No"},
		Default:  "Yes",
		PageSize: 2,
	}

	if err := askSurveyPrompt(cmd, prompt, &choice); err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}

	return choice == "Yes", nil
}

func askSurveyPrompt(cmd *cobra.Command, prompt survey.Prompt, response interface{}) error {
	colorEnabled := surveyColorsEnabled()
	previousDisableColor := surveycore.DisableColor
	surveycore.DisableColor = !colorEnabled
	defer func() {
		surveycore.DisableColor = previousDisableColor
	}()

	questionFormat := "default"
	selectFocusFormat := "default"
	markedFormat := "default"
	if colorEnabled {
		questionFormat = "cyan"
		selectFocusFormat = "cyan"
		markedFormat = "green"
	}

	options := []survey.AskOpt{survey.WithIcons(func(icons *survey.IconSet) {
		icons.Question.Text = ">"
		icons.Question.Format = questionFormat
		icons.SelectFocus.Text = ">"
		icons.SelectFocus.Format = selectFocusFormat
		icons.MarkedOption.Text = "[x]"
		icons.MarkedOption.Format = markedFormat
		icons.UnmarkedOption.Text = "[ ]"
		icons.UnmarkedOption.Format = "default"
	})}

	inputFile, inputOK := cmd.InOrStdin().(*os.File)
	outputFile, outputOK := cmd.OutOrStdout().(*os.File)
	if inputOK && outputOK {
		options = append(options, survey.WithStdio(inputFile, outputFile, outputFile))
	}

	return askSurveyOne(prompt, response, options...)
}

func surveyColorsEnabled() bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}

	termValue := strings.TrimSpace(strings.ToLower(os.Getenv("TERM")))
	return termValue != "dumb"
}

func printSurveyHint(output io.Writer, message string) {
	fmt.Fprintln(output, message)
}
