package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"makelift.dev/pkg/makelift/internal/domain"
	m "makelift.dev/pkg/makelift/internal/model"
)

func TestResolveProjectPath_UsesArgument(t *testing.T) {
	path, err := resolveProjectPath([]string{"/proj"})
	require.NoError(t, err)
	assert.Equal(t, m.Path("/proj"), path)
}

func TestResolveProjectPath_DefaultsToWorkingDirectory(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	path, err := resolveProjectPath(nil)
	require.NoError(t, err)
	assert.Equal(t, m.Path(cwd), path)
}

func TestNewConvertCmd(t *testing.T) {
	cmd := newConvertCmd()
	assert.Equal(t, "convert [project path]", cmd.Use)
	assert.Equal(t, convertLongDescription, cmd.Long)
	assert.NotNil(t, cmd.Flags().Lookup(noReportFlagName))
}

func runConvert(t *testing.T, args ...string) error {
	t.Helper()

	// Keep the log file out of the repository working directory.
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	cmd := newConvertCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	return cmd.Execute()
}

func TestConvertCmd_RequiresRulesPath(t *testing.T) {
	t.Setenv(m.EnvRulesPath, "")

	err := runConvert(t, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), m.EnvRulesPath)
}

func TestConvertCmd_FailsWithoutProjectMakefile(t *testing.T) {
	t.Setenv(m.EnvRulesPath, t.TempDir())

	err := runConvert(t, t.TempDir())
	require.Error(t, err)

	var missing *domain.MissingInputError
	require.ErrorAs(t, err, &missing)
}

func TestConvertCmd_RejectsExtraArguments(t *testing.T) {
	err := runConvert(t, "one", "two")
	require.Error(t, err)
}
