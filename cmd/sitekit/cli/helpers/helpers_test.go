package helpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSite(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestMergeFeatures(t *testing.T) {
	assert.Equal(t, []string{"le", "wpredis", "wpsubdom"}, MergeFeatures([]string{"le", "wpredis"}, []string{"wpsubdom", "le"}))
	assert.Empty(t, MergeFeatures(nil, nil))
}

func TestLoadSiteConfigs(t *testing.T) {
	dir := t.TempDir()
	one := writeSite(t, dir, "one.yaml", "version: 1\nsiteName: one.test\nfeatures: [le]\n")
	two := writeSite(t, dir, "two.yaml", "version: 1\nsiteName: two.test\n")

	configs, err := LoadSiteConfigs([]string{one, two}, []string{"wpredis"})
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, []string{"le", "wpredis"}, configs[0].Features)
	assert.Equal(t, []string{"wpredis"}, configs[1].Features)
}

func TestLoadSiteConfigs_Errors(t *testing.T) {
	dir := t.TempDir()
	one := writeSite(t, dir, "one.yaml", "version: 1\nsiteName: one.test\n")
	dup := writeSite(t, dir, "dup.yaml", "version: 1\nsiteName: one.test\n")
	bad := writeSite(t, dir, "bad.yaml", "version: 3\nsiteName: bad.test\n")

	_, err := LoadSiteConfigs([]string{one, dup}, nil)
	assert.ErrorContains(t, err, "описан дважды")

	out := filepath.Join(dir, "same")
	first := writeSite(t, dir, "first.yaml", "version: 1\nsiteName: first.test\noutput: "+out+"\n")
	second := writeSite(t, dir, "second.yaml", "version: 1\nsiteName: second.test\noutput: "+out+"/\n")
	_, err = LoadSiteConfigs([]string{first, second}, nil)
	assert.ErrorContains(t, err, "пишут в одну директорию")

	_, err = LoadSiteConfigs([]string{bad}, nil)
	assert.Error(t, err)

	_, err = LoadSiteConfigs([]string{filepath.Join(dir, "missing.yaml")}, nil)
	assert.Error(t, err)
}
