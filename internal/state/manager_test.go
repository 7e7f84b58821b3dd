package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	m, err := NewManager(filepath.Join(t.TempDir(), "nested", "sitekit.db"))
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func TestManager_SaveAndGet(t *testing.T) {
	m := newTestManager(t)

	saved, err := m.SaveSite(Site{
		SiteName:      "example.test",
		OutputDir:     "/srv/example.test",
		Features:      []string{"le", "wpredis"},
		ComposeSHA256: "abc",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := m.GetSite("example.test")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, []string{"le", "wpredis"}, got.Features)
	assert.Equal(t, "/srv/example.test", got.OutputDir)
	assert.WithinDuration(t, saved.CreatedAt, got.CreatedAt, time.Second)
}

func TestManager_SaveReplacesByName(t *testing.T) {
	m := newTestManager(t)

	_, err := m.SaveSite(Site{SiteName: "example.test", OutputDir: "a", ComposeSHA256: "1"})
	require.NoError(t, err)
	_, err = m.SaveSite(Site{SiteName: "example.test", OutputDir: "b", ComposeSHA256: "2"})
	require.NoError(t, err)
	_, err = m.SaveSite(Site{SiteName: "another.test", OutputDir: "c", ComposeSHA256: "3"})
	require.NoError(t, err)

	sites, err := m.GetSites()
	require.NoError(t, err)
	require.Len(t, sites, 2)
	assert.Equal(t, "another.test", sites[0].SiteName)
	assert.Equal(t, "example.test", sites[1].SiteName)
	assert.Equal(t, "b", sites[1].OutputDir)
	assert.Empty(t, sites[1].Features)
}

func TestManager_Remove(t *testing.T) {
	m := newTestManager(t)

	_, err := m.SaveSite(Site{SiteName: "example.test", OutputDir: "a", ComposeSHA256: "1"})
	require.NoError(t, err)

	require.NoError(t, m.RemoveSite("example.test"))

	_, err = m.GetSite("example.test")
	assert.ErrorIs(t, err, ErrSiteNotFound)

	assert.ErrorIs(t, m.RemoveSite("example.test"), ErrSiteNotFound)
}
