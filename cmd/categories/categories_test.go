package categories

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mozzadell/cc-optimizer/cmd/root"
	"github.com/mozzadell/cc-optimizer/internal/models"
	"github.com/mozzadell/cc-optimizer/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRender_Text(t *testing.T) {
	out, err := render(models.Categories, "text", nil)
	require.NoError(t, err)
	for _, c := range models.Categories {
		assert.Contains(t, string(out), string(c.Key))
	}
	assert.Contains(t, string(out), "Online Shopping")
}

func TestRender_JSONAndYAML(t *testing.T) {
	out, err := render(models.Categories, "json", nil)
	require.NoError(t, err)
	var fromJSON []models.CategoryInfo
	require.NoError(t, json.Unmarshal(out, &fromJSON))
	assert.Equal(t, models.Categories, fromJSON)

	out, err = render(models.Categories, "yaml", nil)
	require.NoError(t, err)
	var fromYAML []models.CategoryInfo
	require.NoError(t, yaml.Unmarshal(out, &fromYAML))
	assert.Equal(t, models.Categories, fromYAML)
}

func TestRender_CSV(t *testing.T) {
	out, err := render(models.Categories, "csv", report.NewGenerator(report.Options{}, nil))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	assert.Equal(t, "key,label,icon,placeholder", lines[0])
	assert.Len(t, lines, len(models.Categories)+1)
	assert.True(t, strings.HasPrefix(lines[1], "groceries,Groceries,"))
}

func TestRender_CSVUsesGeneratorDelimiter(t *testing.T) {
	gen := report.NewGenerator(report.Options{CSVDelimiter: ';'}, nil)
	out, err := render(models.Categories, "csv", gen)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "key;label;icon;placeholder\n"))
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := render(models.Categories, "toml", nil)
	assert.Error(t, err)
}

func TestCategoriesCommand_WritesToStdout(t *testing.T) {
	root.SharedFlags = root.CommonFlags{Format: "json"}
	t.Cleanup(func() { root.SharedFlags = root.CommonFlags{} })

	var out bytes.Buffer
	Cmd.SetOut(&out)
	require.NoError(t, Cmd.RunE(Cmd, nil))
	assert.Contains(t, out.String(), `"key": "online_retail"`)
}
