package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSurvey answers prompts from canned values: platform labels for the
// MultiSelect, a scope choice and a confirmation for the Selects.
func stubSurvey(t *testing.T, platformLabels []string, scopeChoice string, confirmChoice string) {
	t.Helper()

	previous := askSurveyOne
	askSurveyOne = func(prompt survey.Prompt, response interface{}, _ ...survey.AskOpt) error {
		switch typedPrompt := prompt.(type) {
		case *survey.MultiSelect:
			*(response.(*[]string)) = platformLabels
		case *survey.Select:
			if strings.Contains(typedPrompt.Message, "scope") {
				*(response.(*string)) = scopeChoice
			} else {
				*(response.(*string)) = confirmChoice
			}
		default:
			t.Fatalf("unexpected prompt type %T", prompt)
		}

		return nil
	}

	t.Cleanup(func() {
		askSurveyOne = previous
	})
}

func newWizardCommand() (*cobra.Command, *bytes.Buffer) {
	output := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(output)
	cmd.SetErr(output)
	cmd.SetIn(bytes.NewReader(nil))

	return cmd, output
}

func TestInstallWizardAppliesSelection(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	stubSurvey(t, []string{"Cursor (cursor)"}, "global (user-wide config)", "Yes")

	cmd, output := newWizardCommand()
	require.NoError(t, runInstallWizardSurvey(cmd, newOperations()))

	assert.Contains(t, output.String(), "configured")

	doc := readJSONFile(t, filepath.Join(home, ".cursor", "mcp.json"))
	serverEntry(t, doc, "mcpServers")
}

func TestInstallWizardCancelled(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	stubSurvey(t, []string{"Cursor (cursor)"}, "global (user-wide config)", "No")

	cmd, output := newWizardCommand()
	require.NoError(t, runInstallWizardSurvey(cmd, newOperations()))

	assert.Contains(t, output.String(), "Install cancelled.")

	_, err := os.Stat(filepath.Join(home, ".cursor", "mcp.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestUninstallWizardAppliesSelection(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	_, err := runCommand(t, newInstallCmd(), "--platform", "cursor")
	require.NoError(t, err)

	stubSurvey(t, []string{"Cursor (cursor) [detected]"}, "global (user-wide config)", "Yes")

	cmd, output := newWizardCommand()
	require.NoError(t, runUninstallWizardSurvey(cmd, newOperations()))

	assert.Contains(t, output.String(), "removed")

	doc := readJSONFile(t, filepath.Join(home, ".cursor", "mcp.json"))
	assert.NotContains(t, doc, "mcpServers")
}

func TestInstallWizardLocalScope(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	project := t.TempDir()
	t.Chdir(project)

	stubSurvey(t, []string{"VS Code (vscode)"}, "local (current project)", "Yes")

	cmd, _ := newWizardCommand()
	require.NoError(t, runInstallWizardSurvey(cmd, newOperations()))

	doc := readJSONFile(t, filepath.Join(project, ".vscode", "mcp.json"))
	serverEntry(t, doc, "servers")
}

func TestCanUseInteractiveUIRejectsBuffers(t *testing.T) {
	assert.False(t, canUseInteractiveUI(&bytes.Buffer{}, &bytes.Buffer{}))
}
