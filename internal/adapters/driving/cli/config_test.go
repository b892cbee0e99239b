package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	file "github.com/feynlab/contextcore/internal/adapters/driven/config/file"
)

func newTestConfigStore(t *testing.T) *file.Store {
	t.Helper()
	store, err := file.NewStore(t.TempDir())
	require.NoError(t, err)
	SetConfigStore(store)
	return store
}

func TestConfigShowCommand(t *testing.T) {
	store := newTestConfigStore(t)
	store.Update(func(cfg *file.Config) {
		cfg.Embedding.APIKey = "sk-abcdefghijklmnop"
	})

	out, err := executeCommand(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Embedding provider: openai")
	assert.Contains(t, out, "sk-a...mnop")
	assert.NotContains(t, out, "sk-abcdefghijklmnop", "full key is never printed")
	assert.Contains(t, out, "Top K:              5")
}

func TestConfigSetProvider(t *testing.T) {
	store := newTestConfigStore(t)

	_, err := executeCommand(t, "config", "set", "provider", "ollama")

	require.NoError(t, err)
	assert.Equal(t, "ollama", store.Config().Embedding.Provider)

	reloaded, err := file.NewStore(filepath.Dir(store.Path()))
	require.NoError(t, err)
	assert.Equal(t, "ollama", reloaded.Config().Embedding.Provider, "change is persisted")
}

func TestConfigSetRejectsUnknownProvider(t *testing.T) {
	newTestConfigStore(t)

	_, err := executeCommand(t, "config", "set", "provider", "mystery")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestConfigSetRejectsUnknownKey(t *testing.T) {
	newTestConfigStore(t)

	_, err := executeCommand(t, "config", "set", "colour", "mauve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "(not set)", maskAPIKey(""))
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "sk-1...wxyz", maskAPIKey("sk-1234567890wxyz"))
}
