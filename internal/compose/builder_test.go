package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var flagCombinations = [][]string{
	{},
	{"le"},
	{"wpsubdom"},
	{"wpredis"},
	{"le", "wpsubdom"},
	{"le", "wpredis"},
	{"wpsubdom", "wpredis"},
	{"le", "wpsubdom", "wpredis"},
	{"unknown", "le"},
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func TestNewFlags(t *testing.T) {
	flags := NewFlags("wpredis", "bogus", "le", "le")

	assert.True(t, flags.Has(FeatureLetsEncrypt))
	assert.True(t, flags.Has(FeatureRedis))
	assert.False(t, flags.Has(FeatureSubdomains))
	assert.Len(t, flags, 2)
	assert.Equal(t, []Feature{FeatureLetsEncrypt, FeatureRedis}, flags.List())
}

func TestBuild_ServiceOrder(t *testing.T) {
	for _, tokens := range flagCombinations {
		flags := NewFlags(tokens...)
		names := Build(flags).Names()

		if flags.Has(FeatureRedis) {
			assert.Equal(t, ServiceRedis, names[0], "flags %v", tokens)
			assert.Len(t, names, 6)
		} else {
			assert.Equal(t, -1, indexOf(names, ServiceRedis), "flags %v", tokens)
			assert.Len(t, names, 5)
		}

		assert.Less(t, indexOf(names, ServiceDB), indexOf(names, ServicePHP))
		assert.Less(t, indexOf(names, ServicePHP), indexOf(names, ServiceNginx))
		assert.Equal(t, []string{ServiceNginx, ServiceMail, ServicePHPMyAdmin}, names[len(names)-3:])
		assert.NoError(t, CheckOrder(Build(flags).Services))
	}
}

func TestBuild_NginxEnvironment(t *testing.T) {
	testCases := []struct {
		name     string
		flags    []string
		expected []string
	}{
		{
			name:     "Без флагов",
			flags:    nil,
			expected: []string{"VIRTUAL_HOST"},
		},
		{
			name:  "Только le",
			flags: []string{"le"},
			expected: []string{
				"VIRTUAL_HOST",
				"LETSENCRYPT_HOST=${VIRTUAL_HOST}",
				"LETSENCRYPT_EMAIL=${VIRTUAL_HOST_EMAIL}",
			},
		},
		{
			name:  "Только wpsubdom",
			flags: []string{"wpsubdom"},
			expected: []string{
				"VIRTUAL_HOST=${VIRTUAL_HOST},HostRegexp:{subdomain:.+}.${VIRTUAL_HOST}",
			},
		},
		{
			name:  "le и wpsubdom",
			flags: []string{"wpsubdom", "le"},
			expected: []string{
				"VIRTUAL_HOST=${VIRTUAL_HOST},HostRegexp:{subdomain:.+}.${VIRTUAL_HOST}",
				"LETSENCRYPT_HOST=${VIRTUAL_HOST},HostRegexp:{subdomain:.+}.${VIRTUAL_HOST}",
				"LETSENCRYPT_EMAIL=${VIRTUAL_HOST_EMAIL}",
			},
		},
		{
			name:     "wpredis не влияет на nginx",
			flags:    []string{"wpredis"},
			expected: []string{"VIRTUAL_HOST"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			nginx, ok := Build(NewFlags(tc.flags...)).Service(ServiceNginx)
			require.True(t, ok)

			got := make([]string, len(nginx.Environment))
			for i, env := range nginx.Environment {
				got[i] = env.String()
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestBuild_Dependencies(t *testing.T) {
	b := Build(NewFlags())

	php, _ := b.Service(ServicePHP)
	nginx, _ := b.Service(ServiceNginx)
	db, _ := b.Service(ServiceDB)

	assert.Equal(t, ServiceDB, php.DependsOn)
	assert.Equal(t, ServicePHP, nginx.DependsOn)
	assert.Empty(t, db.DependsOn)
}

func TestBuild_StaticServices(t *testing.T) {
	b := Build(NewFlags("wpredis"))

	redis, ok := b.Service(ServiceRedis)
	require.True(t, ok)
	assert.Equal(t, "easyengine/redis", redis.Image)
	assert.Empty(t, redis.Restart)
	assert.Equal(t, "site-network", redis.Network)

	mail, _ := b.Service(ServiceMail)
	assert.Equal(t, []string{"-invite-jim=false"}, mail.Command)
	port, ok := mail.Lookup("VIRTUAL_PORT")
	require.True(t, ok)
	assert.Equal(t, "8025", port.Value)

	pma, _ := b.Service(ServicePHPMyAdmin)
	host, _ := pma.Lookup("VIRTUAL_HOST")
	assert.Equal(t, "pma.${VIRTUAL_HOST}", host.Value)

	db, _ := b.Service(ServiceDB)
	assert.Equal(t, []string{"./app/db:/var/lib/mysql"}, db.Volumes)
	rootPassword, ok := db.Lookup("MYSQL_ROOT_PASSWORD")
	require.True(t, ok)
	assert.Equal(t, "MYSQL_ROOT_PASSWORD", rootPassword.String())

	assert.True(t, b.Network)
	assert.Equal(t, []string{"site-network"}, b.NetworkNames())
}

func TestBuild_Idempotent(t *testing.T) {
	for _, tokens := range flagCombinations {
		assert.Equal(t, Build(NewFlags(tokens...)), Build(NewFlags(tokens...)))
	}
}

func TestBuild_FreshServices(t *testing.T) {
	first := Build(NewFlags("le"))
	first.Services[0].Volumes[0] = "changed"
	first.Services[0].Environment[0].Value = "changed"

	second := Build(NewFlags("le"))
	assert.Equal(t, "./app/db:/var/lib/mysql", second.Services[0].Volumes[0])
	assert.Empty(t, second.Services[0].Environment[0].Value)
}
