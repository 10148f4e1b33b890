package root_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mozzadell/cc-optimizer/cmd/root"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	root.Init()
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "ccopt", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "credit cards")
	assert.Contains(t, root.Cmd.Long, "ranked by net rewards")
	assert.NotNil(t, root.Cmd.RunE)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	outputFlag := root.Cmd.PersistentFlags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)

	formatFlag := root.Cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "f", formatFlag.Shorthand)

	assert.NotNil(t, root.Cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.Cmd.PersistentFlags().Lookup("no-color"))
}

func TestRootCommand_PreRunBuildsContainer(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("output:\n  format: json\n  top_n: 3\n"), 0600))

	root.SharedFlags = root.CommonFlags{ConfigFile: cfgFile, NoColor: true}
	t.Cleanup(func() { root.SharedFlags = root.CommonFlags{} })

	require.NoError(t, root.Cmd.PersistentPreRunE(&cobra.Command{}, nil))
	require.NotNil(t, root.AppContainer)

	cfg := root.AppContainer.GetConfig()
	assert.Equal(t, 3, cfg.Output.TopN)
	assert.False(t, cfg.Output.Color)
	assert.Equal(t, "json", root.OutputFormat())

	root.SharedFlags.Format = "csv"
	assert.Equal(t, "csv", root.OutputFormat())
}

func TestRootCommand_PreRunRejectsBadConfig(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("output:\n  format: xml\n"), 0600))

	root.SharedFlags = root.CommonFlags{ConfigFile: cfgFile}
	t.Cleanup(func() { root.SharedFlags = root.CommonFlags{} })

	err := root.Cmd.PersistentPreRunE(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}
