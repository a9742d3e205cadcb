package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sgmodkit/sgmerge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load_FileNotFound(t *testing.T) {
	loader := NewLoader()

	m, err := loader.Load("/nonexistent/path/rule.yml")

	assert.Error(t, err)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoader_Load_ValidYAML(t *testing.T) {
	loader := NewLoader()

	yamlContent := `
name: Merged Ad Rules
desc: Aggregated upstream lists
rules:
  - url: https://example.com/a.sgmodule
    drop: ads, banner
  - url: ./local/b.sgmodule
`

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "rule.yml")
	err := os.WriteFile(path, []byte(yamlContent), 0644)
	require.NoError(t, err)

	m, err := loader.Load(path)

	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "Merged Ad Rules", m.Name)
	assert.Equal(t, "Aggregated upstream lists", m.Desc)
	require.Len(t, m.Rules, 2)
	assert.Equal(t, "https://example.com/a.sgmodule", m.Rules[0].URL)
	assert.Equal(t, []string{"ads", "banner"}, m.Rules[0].DropTokens())
	assert.Equal(t, "./local/b.sgmodule", m.Rules[1].URL)
	assert.Empty(t, m.Rules[1].DropTokens())
}

func TestLoader_Load_ValidJSON(t *testing.T) {
	loader := NewLoader()

	jsonContent := `{
		"name": "Merged",
		"rules": [
			{"url": "https://example.com/a.sgmodule"},
			{"url": "https://example.com/b.sgmodule", "drop": "track"}
		]
	}`

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "rule.json")
	err := os.WriteFile(path, []byte(jsonContent), 0644)
	require.NoError(t, err)

	m, err := loader.Load(path)

	require.NoError(t, err)
	require.Len(t, m.Rules, 2)
	assert.Equal(t, []string{"track"}, m.Rules[1].DropTokens())
}

func TestLoader_Load_InvalidYAML(t *testing.T) {
	loader := NewLoader()

	m, err := loader.LoadFromBytes([]byte("rules: [unclosed"), ".yml")

	assert.Error(t, err)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLoader_Load_NoUsableRules(t *testing.T) {
	loader := NewLoader()

	tests := []struct {
		name    string
		content string
	}{
		{"empty rules list", "rules: []\n"},
		{"no rules key", "name: only a header\n"},
		{"rules without urls", "rules:\n  - drop: ads\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := loader.LoadFromBytes([]byte(tt.content), ".yml")
			assert.Nil(t, m)
			assert.ErrorIs(t, err, domain.ErrNoRules)
		})
	}
}

func TestLoader_Load_SkipsRulesWithoutURL(t *testing.T) {
	loader := NewLoader()

	yamlContent := `
rules:
  - drop: orphan-tokens
  - url: https://example.com/a.sgmodule
`

	m, err := loader.LoadFromBytes([]byte(yamlContent), ".yml")

	require.NoError(t, err)
	rules := m.UsableRules()
	require.Len(t, rules, 1)
	assert.Equal(t, "https://example.com/a.sgmodule", rules[0].Source)
}
