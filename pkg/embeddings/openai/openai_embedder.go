package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/continuum-run/continuum/pkg/config"
	"github.com/continuum-run/continuum/pkg/embeddings"
	"github.com/continuum-run/continuum/pkg/embeddings/iface"
	// Placeholder for an actual OpenAI client library, e.g., "github.com/sashabaranov/go-openai"
	// For now, we will simulate the client interaction.
)

func init() {
	embeddings.RegisterEmbedderProvider(embeddings.ProviderOpenAI, func(appConfig *config.ViperProvider) (iface.Embedder, error) {
		var openaiCfg config.OpenAIEmbedderConfig
		// Populate openaiCfg field by field using ViperProvider methods
		openaiCfg.APIKey = appConfig.GetString("embeddings.openai.api_key")
		openaiCfg.Model = appConfig.GetString("embeddings.openai.model")
		openaiCfg.APIVersion = appConfig.GetString("embeddings.openai.api_version")
		openaiCfg.APIEndpoint = appConfig.GetString("embeddings.openai.api_endpoint")
		openaiCfg.Timeout = appConfig.GetInt("embeddings.openai.timeout_seconds")

		// Add checks for required fields, e.g., APIKey
		if openaiCfg.APIKey == "" && appConfig.IsSet("embeddings.openai.api_key") { // if it was set to empty string
            // allow empty if not set at all, NewOpenAIEmbedder will handle it
        } else if openaiCfg.APIKey == "" && !appConfig.IsSet("embeddings.openai.api_key"){
             // if it was not set at all, NewOpenAIEmbedder will handle it by returning error or using env var
        } else if openaiCfg.APIKey == "" { // general case for empty api key after trying to fetch
            // This case might be redundant given NewOpenAIEmbedder handles empty APIKey
            // but can be kept for explicit factory-level check if desired.
            // However, NewOpenAIEmbedder already returns an error if APIKey is empty after its defaults.
        }

		return NewOpenAIEmbedder(openaiCfg)
	})
}

const (
	// DefaultOpenAIEmbeddingsModel is a common default model.
	DefaultOpenAIEmbeddingsModel = "text-embedding-ada-002"
	// Known dimension for text-embedding-ada-002
	Ada002Dimension = 1536
)

// OpenAIEmbedder implements the embeddings.Embedder interface using the OpenAI API.
type OpenAIEmbedder struct {
	config config.OpenAIEmbedderConfig
	// httpClient *http.Client // Or a specific OpenAI client
}

// NewOpenAIEmbedder creates a new OpenAIEmbedder.
func NewOpenAIEmbedder(cfg config.OpenAIEmbedderConfig) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		// Attempt to get from environment variable if not provided in config
		// This is a common pattern, but for simplicity, we'll require it in config or rely on OpenAI client library defaults.
		// For now, strictly require it from config or let the OpenAI client handle env vars.
		return nil, fmt.Errorf("OpenAI API key is required and was not found in config")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIEmbeddingsModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 // Default timeout 30 seconds
	}

	return &OpenAIEmbedder{
		config: cfg,
		// Initialize http client or OpenAI client here
	}, nil
}

// EmbedDocuments generates embeddings for a batch of documents using the OpenAI API.
func (e *OpenAIEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	// Mocked response for now
	fmt.Printf("Simulating OpenAI API call for %d documents with model %s\n", len(texts), e.config.Model)
	time.Sleep(100 * time.Millisecond) // Simulate network latency

	results := make([][]float32, len(texts))
	dim, _ := e.GetDimension(ctx)
	for i := range texts {
		dummyEmbedding := make([]float32, dim)
		for j := 0; j < dim; j++ {
			dummyEmbedding[j] = float32(i+1) * 0.1 * float32(j+1)
		}
		results[i] = dummyEmbedding
	}
	return results, nil
}

// EmbedQuery generates an embedding for a single query text using the OpenAI API.
func (e *OpenAIEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("cannot embed empty query text")
	}

	// Mocked response for now
	fmt.Printf("Simulating OpenAI API call for query 	%s	 with model %s\n", text, e.config.Model)
	time.Sleep(50 * time.Millisecond)
	dim, _ := e.GetDimension(ctx)
	dummyEmbedding := make([]float32, dim)
	for j := 0; j < dim; j++ {
		dummyEmbedding[j] = 0.5 * float32(j+1)
	}
	return dummyEmbedding, nil
}

// GetDimension returns the dimensionality of the embeddings produced by the configured model.
func (e *OpenAIEmbedder) GetDimension(_ context.Context) (int, error) {
	switch e.config.Model {
	case "text-embedding-ada-002":
		return Ada002Dimension, nil
	case "text-embedding-3-small":
		return 1536, nil
	case "text-embedding-3-large":
		return 3072, nil
	default:
		fmt.Printf("Warning: Unknown OpenAI embedding model 	%s	, defaulting dimension to %d. Consider updating GetDimension.\n", e.config.Model, Ada002Dimension)
		return Ada002Dimension, nil
	}
}

var _ iface.Embedder = (*OpenAIEmbedder)(nil)

