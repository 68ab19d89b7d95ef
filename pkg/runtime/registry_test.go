package runtime

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/continuum-run/continuum/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModule struct {
	desc    Descriptor
	calls   atomic.Int64
	handler func(ctx context.Context, command string, params map[string]any) (any, error)
}

func (f *fakeModule) Descriptor() Descriptor { return f.desc }
func (f *fakeModule) Handle(ctx context.Context, command string, params map[string]any) (any, error) {
	f.calls.Add(1)
	if f.handler != nil {
		return f.handler(ctx, command, params)
	}
	return "ok", nil
}

func TestDispatchUnknownCommand(t *testing.T) {
	r := New()
	_, err := r.Dispatch(context.Background(), "nope/thing", nil)
	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.KindUnknownCommand))
}

func TestDispatchLongestPrefixWins(t *testing.T) {
	r := New()
	general := &fakeModule{desc: Descriptor{Name: "general", CommandPrefixes: []string{"voice/"}}}
	specific := &fakeModule{desc: Descriptor{Name: "specific", CommandPrefixes: []string{"voice/call/"}}}
	require.NoError(t, r.Register(general))
	require.NoError(t, r.Register(specific))

	_, err := r.Dispatch(context.Background(), "voice/call/join", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), specific.calls.Load())
	assert.Equal(t, int64(0), general.calls.Load())

	_, err = r.Dispatch(context.Background(), "voice/synthesize", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), general.calls.Load())
}

func TestDispatchRecordsMetrics(t *testing.T) {
	r := New()
	m := &fakeModule{
		desc: Descriptor{Name: "m", CommandPrefixes: []string{"m/"}},
		handler: func(ctx context.Context, command string, params map[string]any) (any, error) {
			time.Sleep(time.Millisecond)
			return nil, core.NewKindError("m.Handle", core.KindBadParam, "boom", nil)
		},
	}
	require.NoError(t, r.Register(m))

	_, err := r.Dispatch(context.Background(), "m/do", nil)
	require.Error(t, err)

	info, ok := r.Info("m")
	require.True(t, ok)
	assert.Equal(t, uint64(1), info.Metrics.Calls)
	assert.Equal(t, uint64(1), info.Metrics.Errors)
	assert.Greater(t, info.Metrics.TotalLatencyNs, uint64(0))
}

func TestDispatchConcurrencyCap(t *testing.T) {
	r := New()
	running := atomic.Int32{}
	maxObserved := atomic.Int32{}
	release := make(chan struct{})
	m := &fakeModule{
		desc: Descriptor{Name: "capped", CommandPrefixes: []string{"capped/"}, MaxConcurrency: 2},
		handler: func(ctx context.Context, command string, params map[string]any) (any, error) {
			n := running.Add(1)
			for {
				cur := maxObserved.Load()
				if n <= cur || maxObserved.CompareAndSwap(cur, n) {
					break
				}
			}
			<-release
			running.Add(-1)
			return nil, nil
		},
	}
	require.NoError(t, r.Register(m))

	for i := 0; i < 5; i++ {
		go r.Dispatch(context.Background(), "capped/x", nil)
	}
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, maxObserved.Load(), int32(2))
	close(release)
}

func TestParamsAliasAndDefaults(t *testing.T) {
	p := Params{"max_tokens": float64(128)}
	v, err := p.Int("maxTokens", "max_tokens")
	require.NoError(t, err)
	assert.Equal(t, int64(128), v)

	assert.Equal(t, "fallback", p.StringOr("fallback", "missing_key"))

	_, err = p.String("missing")
	assert.True(t, core.IsKind(err, core.KindMissingParam))
}

func TestParamsAs(t *testing.T) {
	type shape struct {
		Name string `json:"name"`
	}
	p := Params{"cfg": map[string]any{"name": "hi"}}
	var s shape
	require.NoError(t, p.As(&s, "cfg"))
	assert.Equal(t, "hi", s.Name)
}

func TestCamelAlias(t *testing.T) {
	assert.Equal(t, "maxTokens", CamelAlias("max_tokens"))
}
