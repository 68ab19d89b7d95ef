// Package adapterstore implements the adapter registry (spec component C9):
// resolving a LoRA adapter repository id from a remote hub, caching the
// downloaded artifacts locally, and reading back the manifest.
//
// HTTP transport is plain net/http (teacher convention — see
// pkg/llms/providers/ollama and pkg/llms/providers/gemini, neither of which
// reach for a REST client library for simple GET-then-body-read calls).
package adapterstore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/continuum-run/continuum/pkg/core"
	"github.com/continuum-run/continuum/pkg/inference/lora"
)

const (
	adapterConfigFile = "adapter_config.json"
	adapterWeightFile = "adapter_model.safetensors"
	manifestFile      = "manifest.json"
)

// Manifest is the locally cached summary spec §4.7 describes: "writes a
// manifest.json summarizing base model, rank, alpha, target modules".
type Manifest struct {
	RepoID        string   `json:"repo_id"`
	Revision      string   `json:"revision,omitempty"`
	BaseModel     string   `json:"base_model"`
	Rank          int      `json:"rank"`
	Alpha         float64  `json:"alpha"`
	TargetModules []string `json:"target_modules"`
	CachedAt      string   `json:"cached_at"`
}

// HubClient fetches adapter artifacts from a remote hub. The production
// implementation talks to a Hugging-Face-compatible hub over HTTPS; tests
// supply an in-memory fake.
type HubClient interface {
	FetchConfig(ctx context.Context, repoID, revision string) ([]byte, bool, error)
	FetchWeights(ctx context.Context, repoID, revision string) ([]byte, error)
}

// HTTPHubClient is the default HubClient, speaking plain HTTPS GET against a
// configurable base URL (e.g. "https://huggingface.co").
type HTTPHubClient struct {
	BaseURL string
	Client  *http.Client
}

func (h *HTTPHubClient) httpClient() *http.Client {
	if h.Client != nil {
		return h.Client
	}
	return &http.Client{Timeout: 60 * time.Second}
}

func (h *HTTPHubClient) fetch(ctx context.Context, repoID, revision, file string) ([]byte, int, error) {
	rev := revision
	if rev == "" {
		rev = "main"
	}
	url := strings.TrimRight(h.BaseURL, "/") + "/" + repoID + "/resolve/" + rev + "/" + file
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := h.httpClient().Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// FetchConfig implements HubClient; a 404 is not an error (spec §4.7:
// "tolerant of absence -> defaults").
func (h *HTTPHubClient) FetchConfig(ctx context.Context, repoID, revision string) ([]byte, bool, error) {
	body, status, err := h.fetch(ctx, repoID, revision, adapterConfigFile)
	if err != nil {
		return nil, false, err
	}
	if status == http.StatusNotFound {
		return nil, false, nil
	}
	if status != http.StatusOK {
		return nil, false, core.NewKindError("adapterstore.FetchConfig", core.KindAdapterNotFound,
			"unexpected status fetching adapter_config.json", nil)
	}
	return body, true, nil
}

// FetchWeights implements HubClient; the weight file is required.
func (h *HTTPHubClient) FetchWeights(ctx context.Context, repoID, revision string) ([]byte, error) {
	body, status, err := h.fetch(ctx, repoID, revision, adapterWeightFile)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, core.NewKindError("adapterstore.FetchWeights", core.KindAdapterNotFound,
			"adapter_model.safetensors not found for repo", nil)
	}
	return body, nil
}

// Store caches adapters under CacheDir, keyed by a filesystem-safe encoding
// of the repo id (spec §4.7).
type Store struct {
	CacheDir string
	Hub      HubClient
	nowFunc  func() time.Time
}

// New builds a Store rooted at cacheDir using hub for remote fetches.
func New(cacheDir string, hub HubClient) *Store {
	return &Store{CacheDir: cacheDir, Hub: hub, nowFunc: time.Now}
}

// encodeRepoID implements spec §4.7's "filesystem-safe encoding", mirroring
// the well-known owner--repo convention (slashes become double-dashes).
func encodeRepoID(repoID string) string {
	return strings.ReplaceAll(repoID, "/", "--")
}

func (s *Store) localDir(repoID string) string {
	return filepath.Join(s.CacheDir, encodeRepoID(repoID))
}

// Resolve fetches (if not already cached) and returns the local directory
// and manifest for repoID@revision, per spec §4.7's three-step procedure.
func (s *Store) Resolve(ctx context.Context, repoID, revision string) (dir string, manifest Manifest, err error) {
	dir = s.localDir(repoID)
	manifestPath := filepath.Join(dir, manifestFile)

	if data, readErr := os.ReadFile(manifestPath); readErr == nil {
		var m Manifest
		if jsonErr := json.Unmarshal(data, &m); jsonErr == nil {
			return dir, m, nil
		}
	}

	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", Manifest{}, core.NewKindError("adapterstore.Resolve", core.KindAdapterNotFound,
			"failed creating local cache directory", err)
	}

	configBytes, present, fetchErr := s.Hub.FetchConfig(ctx, repoID, revision)
	if fetchErr != nil {
		return "", Manifest{}, fetchErr
	}
	cfg := lora.Manifest{}
	if present {
		if jsonErr := json.Unmarshal(configBytes, &cfg); jsonErr != nil {
			return "", Manifest{}, core.NewKindError("adapterstore.Resolve", core.KindBadParam,
				"malformed adapter_config.json", jsonErr)
		}
		if err = os.WriteFile(filepath.Join(dir, adapterConfigFile), configBytes, 0o644); err != nil {
			return "", Manifest{}, err
		}
	}

	weights, fetchErr := s.Hub.FetchWeights(ctx, repoID, revision)
	if fetchErr != nil {
		return "", Manifest{}, fetchErr
	}
	if err = os.WriteFile(filepath.Join(dir, adapterWeightFile), weights, 0o644); err != nil {
		return "", Manifest{}, err
	}

	manifest = Manifest{
		RepoID:        repoID,
		Revision:      revision,
		BaseModel:     cfg.BaseModel,
		Rank:          cfg.Rank,
		Alpha:         cfg.LoraAlpha,
		TargetModules: cfg.TargetModules,
		CachedAt:      s.nowFunc().UTC().Format(time.RFC3339),
	}
	manifestBytes, jsonErr := json.MarshalIndent(manifest, "", "  ")
	if jsonErr != nil {
		return "", Manifest{}, jsonErr
	}
	if err = os.WriteFile(manifestPath, manifestBytes, 0o644); err != nil {
		return "", Manifest{}, err
	}

	return dir, manifest, nil
}

// knownFamilyTokens are substrings spec §4.7 calls out by example ("both
// contain a known family token (e.g. llama)") as an accepted compatibility
// signal even without an exact or substring match.
var knownFamilyTokens = []string{"llama", "mistral", "qwen", "phi", "gemma"}

// CompatibleWithBase implements spec §4.7's compatibility check: exact
// match, substring match in either direction, or a shared known family
// token, are all accepted.
func CompatibleWithBase(adapterBaseModel, loadedBaseModel string) bool {
	a := strings.ToLower(adapterBaseModel)
	b := strings.ToLower(loadedBaseModel)
	if a == b {
		return true
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	for _, token := range knownFamilyTokens {
		if strings.Contains(a, token) && strings.Contains(b, token) {
			return true
		}
	}
	return false
}
