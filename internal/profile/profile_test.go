package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileDefaults(t *testing.T) {
	p := &Profile{Data: t.TempDir()}
	p.FromEnv()
	require.NoError(t, p.Validate())

	assert.Equal(t, "dev", p.Mode)
	assert.Equal(t, "sqlite", p.Driver)
	assert.Equal(t, 8291, p.Port)
	assert.Equal(t, 1000, p.CacheMaxItems)
	assert.Contains(t, p.DSN, "grouplabel_dev.db")
}

func TestProfileFromEnv(t *testing.T) {
	t.Setenv("GROUPLABEL_MODE", "prod")
	t.Setenv("GROUPLABEL_PORT", "9100")
	t.Setenv("GROUPLABEL_DEFAULT_GROUP", "member")

	p := &Profile{Data: t.TempDir()}
	p.FromEnv()
	require.NoError(t, p.Validate())

	assert.Equal(t, "prod", p.Mode)
	assert.Equal(t, 9100, p.Port)
	assert.Equal(t, "member", p.DefaultGroup)
}

func TestProfileFlagsOverrideEnv(t *testing.T) {
	t.Setenv("GROUPLABEL_MODE", "prod")

	p := &Profile{Mode: "dev", Data: t.TempDir()}
	p.FromEnv()
	require.NoError(t, p.Validate())

	assert.Equal(t, "dev", p.Mode)
}

func TestProfileValidate(t *testing.T) {
	t.Run("UnknownDriver", func(t *testing.T) {
		p := &Profile{Driver: "mysql", Data: t.TempDir()}
		assert.Error(t, p.Validate())
	})

	t.Run("PostgresRequiresDSN", func(t *testing.T) {
		p := &Profile{Driver: "postgres", Data: t.TempDir()}
		assert.Error(t, p.Validate())
	})

	t.Run("ModeFallback", func(t *testing.T) {
		p := &Profile{Mode: "staging", Driver: "sqlite", Data: t.TempDir()}
		require.NoError(t, p.Validate())
		assert.Equal(t, "dev", p.Mode)
	})
}
