package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
dependencies:
  - token: config
  - token: cache
    qualifier: redis
    lifecycle: TRANSIENT
  - token: repository
    qualifier: primary
    requires:
      - config
      - { token: cache, qualifier: redis }
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, m.Dependencies, 3)

	assert.Equal(t, Dependency{Token: "config", Lifecycle: DefaultLifecycle}, m.Dependencies[0])
	assert.Equal(t, "TRANSIENT", m.Dependencies[1].Lifecycle)
	assert.Equal(t, Requirement{Token: "cache", Qualifier: "redis"}, m.Dependencies[1].Key())

	repo := m.Dependencies[2]
	assert.Equal(t, DefaultLifecycle, repo.Lifecycle)
	assert.Equal(t, []Requirement{
		{Token: "config"},
		{Token: "cache", Qualifier: "redis"},
	}, repo.Requires)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"missing token", "dependencies:\n  - lifecycle: SINGLETON\n", "dependency 0: missing token"},
		{"missing requirement token", "dependencies:\n  - token: a\n    requires:\n      - { qualifier: x }\n", "dependency 0 requirement 0: missing token"},
		{"malformed", "dependencies: [", "failed to parse manifest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	m, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, m.Dependencies)
}

func TestRequirement_String(t *testing.T) {
	assert.Equal(t, "config", Requirement{Token: "config"}.String())
	assert.Equal(t, "cache/redis", Requirement{Token: "cache", Qualifier: "redis"}.String())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deps.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Dependencies, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read manifest")
}
