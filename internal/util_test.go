package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSecretsFromFile(t *testing.T) {
	t.Run("reads the fmp key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "secrets.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"fmp": "abc123"}`), 0o600))

		secrets, err := LoadSecretsFromFile(path)
		require.NoError(t, err)
		require.Equal(t, "abc123", secrets.FmpApiKey)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSecretsFromFile(filepath.Join(t.TempDir(), "nope.json"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "secrets.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"fmp":`), 0o600))

		_, err := LoadSecretsFromFile(path)
		require.Error(t, err)
	})
}

func TestLoadSecrets(t *testing.T) {
	t.Run("env overrides the file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		require.NoError(t, os.WriteFile("secrets.json", []byte(`{"fmp": "from-file"}`), 0o600))
		t.Setenv("FINSPAN_ENV", "")
		t.Setenv(fmpApiKeyEnv, "from-env")

		secrets, err := LoadSecrets()
		require.NoError(t, err)
		require.Equal(t, "from-env", secrets.FmpApiKey)
	})

	t.Run("dev secrets", func(t *testing.T) {
		t.Chdir(t.TempDir())
		require.NoError(t, os.WriteFile("secrets-dev.json", []byte(`{"fmp": "dev-key"}`), 0o600))
		t.Setenv("FINSPAN_ENV", "dev")
		t.Setenv(fmpApiKeyEnv, "")

		secrets, err := LoadSecrets()
		require.NoError(t, err)
		require.Equal(t, "dev-key", secrets.FmpApiKey)
	})

	t.Run("no key anywhere", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("FINSPAN_ENV", "")
		t.Setenv(fmpApiKeyEnv, "")

		_, err := LoadSecrets()
		require.Error(t, err)
	})
}
