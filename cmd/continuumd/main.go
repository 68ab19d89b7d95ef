// Command continuumd is the composition root: it wires every component
// package behind the command dispatch plane (pkg/runtime) and exposes it
// over the NDJSON-over-Unix-socket transport spec §6 describes, plus a
// loopback HTTP sidecar for health and Prometheus metrics.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/continuum-run/continuum/pkg/gpubroker"
	"github.com/continuum-run/continuum/pkg/inference/backend"
	inferenceiface "github.com/continuum-run/continuum/pkg/inference/iface"
	"github.com/continuum-run/continuum/pkg/inference/queue"
	"github.com/continuum-run/continuum/pkg/llms"
	"github.com/continuum-run/continuum/pkg/llms/adapterselect"
	_ "github.com/continuum-run/continuum/pkg/llms/providers/anthropic"
	_ "github.com/continuum-run/continuum/pkg/llms/providers/mock"
	_ "github.com/continuum-run/continuum/pkg/llms/providers/openai"
	"github.com/continuum-run/continuum/pkg/monitoring"
	"github.com/continuum-run/continuum/pkg/orchestration/messagebus"
	"github.com/continuum-run/continuum/pkg/runtime"
	"github.com/continuum-run/continuum/pkg/sentinel"
	"github.com/continuum-run/continuum/pkg/storage"
)

func main() {
	socketPath := flag.String("socket", "/tmp/continuumd.sock", "NDJSON command socket path")
	httpAddr := flag.String("http", "127.0.0.1:8090", "loopback health/metrics address")
	totalGPUMB := flag.Int64("gpu-total-mb", 16384, "total GPU memory budget tracked by the allocation broker")
	flag.Parse()

	// NewMonitor's functional options operate on an unexported monitorConfig
	// and none of the package's With* helpers (WithServiceName and friends)
	// actually return that Option type — they return ConfigOption, which
	// targets the separate Config struct used by NewMonitorWithConfig. There
	// is no constructor-compatible way to set the service name here, so we
	// take NewMonitor's documented default (monitorConfig.serviceName) as-is.
	monitor, err := monitoring.NewMonitor()
	if err != nil {
		fmt.Fprintln(os.Stderr, "continuumd: failed to build monitor:", err)
		os.Exit(1)
	}
	log := monitor.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := monitor.Start(ctx); err != nil {
		log.Error(ctx, "monitor failed to start", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer monitor.Stop(context.Background())

	reg := runtime.New()

	bus := messagebus.New()

	adapters := adapterselect.New()
	registerChatAdapters(ctx, adapters, log)

	llmInvoker := func(ctx context.Context, spec sentinel.LlmSpec) (string, int, int, error) {
		adapter, err := adapters.Select(spec.Provider, spec.Model)
		if err != nil {
			return "", 0, 0, err
		}
		result, err := adapter.GenerateText(ctx, spec.Prompt, spec.Model)
		if err != nil {
			return "", 0, 0, err
		}
		return result.Text, result.Usage.PromptTokens, result.Usage.CompletionTokens, nil
	}

	interpreter := sentinel.NewInterpreter(bus, reg, llmInvoker)

	broker := gpubroker.Default(*totalGPUMB)
	selfTestInferenceStack(ctx, broker, log)

	registerStorage(ctx, log)

	cognitionMod := newCognitionModule()

	modules := []runtime.Module{
		newRuntimeModule(reg),
		newEmbeddingModule(),
		cognitionMod,
		newInboxModule(cognitionMod),
		newSentinelModule(interpreter),
		newVoiceModule(),
	}
	for _, m := range modules {
		if err := reg.Register(m); err != nil {
			log.Error(ctx, "module registration failed", map[string]any{"module": m.Descriptor().Name, "error": err.Error()})
			os.Exit(1)
		}
	}

	socket := newSocketServer(*socketPath, reg, log)
	healthMgr := newHealthManager(reg)
	meterProvider, err := newMeterProvider()
	if err != nil {
		log.Error(ctx, "failed to build meter provider", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer meterProvider.Shutdown(context.Background())

	httpServer := startObservabilityServer(ctx, *httpAddr, observabilityMux(reg, healthMgr))

	serveErrCh := make(chan error, 1)
	go func() {
		serveErrCh <- socket.Serve(ctx)
	}()

	log.Info(ctx, "continuumd listening", map[string]any{"socket": *socketPath, "http": *httpAddr})

	select {
	case <-ctx.Done():
		log.Info(ctx, "shutdown signal received", nil)
	case err := <-serveErrCh:
		if err != nil {
			log.Error(ctx, "socket server exited", map[string]any{"error": err.Error()})
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = socket.Close()
	_ = httpServer.Shutdown(shutdownCtx)
}

// registerChatAdapters wires one adapterselect.Adapter per chat-model
// provider the process has credentials for, always including the
// dependency-free mock provider so the Llm step has somewhere to go even
// with no API keys configured.
func registerChatAdapters(ctx context.Context, adapters *adapterselect.Registry, log interface {
	Info(ctx context.Context, message string, fields ...map[string]any)
}) {
	mockAdapter := adapterselect.NewChatModelAdapter(adapterselect.Descriptor{
		ProviderID:   "mock",
		Name:         "Mock",
		DefaultModel: "mock-model",
		Capabilities: adapterselect.Capabilities{TextGeneration: true, Chat: true, IsLocal: true},
	}, llms.NewConfig(llms.WithProvider("mock"), llms.WithModelName("mock-model")))
	adapters.Register(mockAdapter)

	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		anthropicAdapter := adapterselect.NewChatModelAdapter(adapterselect.Descriptor{
			ProviderID:    "anthropic",
			Name:          "Anthropic",
			APIKeyEnv:     "ANTHROPIC_API_KEY",
			DefaultModel:  "claude-3-haiku-20240307",
			ModelPrefixes: []string{"claude"},
			Capabilities:  adapterselect.Capabilities{TextGeneration: true, Chat: true},
		}, llms.NewConfig(llms.WithProvider("anthropic"), llms.WithAPIKey(key), llms.WithModelName("claude-3-haiku-20240307")))
		adapters.Register(anthropicAdapter)
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		openaiAdapter := adapterselect.NewChatModelAdapter(adapterselect.Descriptor{
			ProviderID:    "openai",
			Name:          "OpenAI",
			APIKeyEnv:     "OPENAI_API_KEY",
			DefaultModel:  "gpt-4o-mini",
			ModelPrefixes: []string{"gpt"},
			Capabilities:  adapterselect.Capabilities{TextGeneration: true, Chat: true},
		}, llms.NewConfig(llms.WithProvider("openai"), llms.WithAPIKey(key), llms.WithModelName("gpt-4o-mini")))
		adapters.Register(openaiAdapter)
	}

	if err := adapters.InitializeAll(ctx); err != nil {
		for provider, initErr := range err {
			log.Info(ctx, "adapter initialization failed", map[string]any{"provider": provider, "error": initErr.Error()})
		}
	}
}

// selfTestInferenceStack brings up the priority inference queue (C11) over
// a deterministic backend (C10), submits one warm-tier forward pass to
// prove the worker loop is alive, and books a nominal GPU allocation (C23)
// for the loaded backend so its footprint is visible in broker status.
func selfTestInferenceStack(ctx context.Context, broker *gpubroker.Broker, log interface {
	Info(ctx context.Context, message string, fields ...map[string]any)
	Error(ctx context.Context, message string, fields ...map[string]any)
}) {
	modelID := os.Getenv("INFERENCE_MODEL_ID")
	if modelID == "" {
		modelID = "continuum-demo-base"
	}

	arch := inferenceiface.Architecture{
		VocabSize:   256,
		HiddenSize:  64,
		LayerCount:  2,
		MaxContext:  2048,
		EOSTokenIDs: []int{0},
	}
	weights := map[string]*mat.Dense{
		"layer0.w": mat.NewDense(arch.HiddenSize, arch.HiddenSize, nil),
	}
	active := backend.NewDeterministicBackend(modelID, arch, weights)
	handle := backend.NewHandle(active)

	decision := broker.Allocate(gpubroker.Request{ID: "backend:" + modelID, Owner: "inference-backend", SizeMB: 512, Priority: 1.0})
	if decision.Decision != gpubroker.Granted {
		log.Error(ctx, "GPU broker denied backend allocation at startup", map[string]any{"decision": decision.Decision, "reason": decision.Reason})
	}

	q := queue.New(func() inferenceiface.Backend { return handle.Get() })
	go q.Run(ctx)

	selfTestCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if _, err := q.Submit(selfTestCtx, queue.Warm, queue.Request{Tokens: []int{1, 2, 3}, Position: 0}); err != nil {
		log.Error(ctx, "inference queue self-test failed", map[string]any{"error": err.Error()})
		return
	}
	log.Info(ctx, "inference backend online", map[string]any{"modelId": modelID})
}

// registerStorage opens the Postgres-backed structured store (C22) when a
// connection string is configured; storage is optional infrastructure, not
// required for the command surface to come up, so its absence only logs.
func registerStorage(ctx context.Context, log interface {
	Info(ctx context.Context, message string, fields ...map[string]any)
	Error(ctx context.Context, message string, fields ...map[string]any)
}) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Info(ctx, "DATABASE_URL not set, storage adapter disabled", nil)
		return
	}
	store, err := storage.Open(ctx, dsn)
	if err != nil {
		log.Error(ctx, "storage adapter failed to connect", map[string]any{"error": err.Error()})
		return
	}
	log.Info(ctx, "storage adapter connected", nil)
	go func() {
		<-ctx.Done()
		_ = store.Close()
	}()
}
