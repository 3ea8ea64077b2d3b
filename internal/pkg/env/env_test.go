package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv_PrefersLoadedFile(t *testing.T) {
	Env = map[string]string{"CMS_TEST_KEY": "from-file"}
	t.Cleanup(func() { Env = nil })
	t.Setenv("CMS_TEST_KEY", "from-os")

	assert.Equal(t, "from-file", GetEnv("CMS_TEST_KEY", "default"))
}

func TestGetEnv_FallsBackToOSAndDefault(t *testing.T) {
	Env = map[string]string{}
	t.Cleanup(func() { Env = nil })

	t.Setenv("CMS_TEST_OS_ONLY", "from-os")
	assert.Equal(t, "from-os", GetEnv("CMS_TEST_OS_ONLY", "default"))
	assert.Equal(t, "default", GetEnv("CMS_TEST_MISSING", "default"))
}

func TestGetEnvInt(t *testing.T) {
	Env = map[string]string{"A": "42", "B": "forty-two", "C": " 7 "}
	t.Cleanup(func() { Env = nil })

	assert.Equal(t, 42, GetEnvInt("A", 1))
	assert.Equal(t, 1, GetEnvInt("B", 1))
	assert.Equal(t, 7, GetEnvInt("C", 1))
	assert.Equal(t, 3, GetEnvInt("CMS_TEST_MISSING", 3))
}

func TestGetEnvBool(t *testing.T) {
	Env = map[string]string{"ON": "true", "OFF": "0", "BAD": "maybe"}
	t.Cleanup(func() { Env = nil })

	assert.True(t, GetEnvBool("ON", false))
	assert.False(t, GetEnvBool("OFF", true))
	assert.True(t, GetEnvBool("BAD", true))
	assert.False(t, GetEnvBool("CMS_TEST_MISSING", false))
}

func TestSetupEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_ENV=dev\nDB_DRIVER=sqlite\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		Env = nil
	})

	assert.True(t, SetupEnvFile())
	assert.Equal(t, "sqlite", GetEnv("DB_DRIVER", "mysql"))
	assert.True(t, IsDev())
}
