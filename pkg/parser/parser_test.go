package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	// Table-driven tests — стандартный паттерн в Go
	testCases := []struct {
		name        string
		yamlContent []byte
		expectErr   bool
		validate    func(*testing.T, *Config)
	}{
		{
			name: "Успешный парсинг корректного конфига",
			yamlContent: []byte(`
version: 1
siteName: example.test
email: owner@example.test
features:
  - le
  - wpredis
output: /srv/sites/example.test
`),
			validate: func(t *testing.T, c *Config) {
				assert.Equal(t, "example.test", c.SiteName)
				assert.Equal(t, []string{"le", "wpredis"}, c.Features)
				assert.Equal(t, "owner@example.test", c.AdminEmail())
				assert.Equal(t, "/srv/sites/example.test", c.OutputDir())
				assert.NoError(t, c.Validate())
			},
		},
		{
			name: "Значения по умолчанию",
			yamlContent: []byte(`
version: 1
siteName: blog.test
features: [wpsubdom, something-else]
`),
			validate: func(t *testing.T, c *Config) {
				assert.Equal(t, "admin@blog.test", c.AdminEmail())
				assert.Equal(t, "blog.test", c.OutputDir())
				assert.NoError(t, c.Validate())
			},
		},
		{
			name: "Ошибка при некорректном YAML",
			yamlContent: []byte(`
version: 1
siteName: my-site
  features: - broken
`),
			expectErr: true,
		},
		{
			name:        "Ошибка при пустом контенте",
			yamlContent: []byte(""),
			expectErr:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config, err := Parse(tc.yamlContent)

			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tc.validate != nil {
				tc.validate(t, config)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, (&Config{Version: 2, SiteName: "a.test"}).Validate())
	assert.Error(t, (&Config{Version: 1}).Validate())
	assert.NoError(t, (&Config{Version: 1, SiteName: "a.test"}).Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	config := &Config{Version: 1, SiteName: "shop.test", Features: []string{"le"}}
	content, err := Marshal(config)
	require.NoError(t, err)

	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, content, 0644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = Load(empty)
	assert.ErrorIs(t, err, ErrEmptyConfig)
}
