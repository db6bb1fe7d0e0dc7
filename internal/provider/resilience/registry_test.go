package resilience_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruthgorge/expedition/internal/provider/resilience"
)

func TestRegistry_RegisterOnCreate(t *testing.T) {
	registry := resilience.NewRegistry()
	cfg := resilience.DefaultClientConfig("reference-document")
	cfg.Registry = registry

	client := resilience.NewClient(cfg)
	assert.Equal(t, "reference-document", client.Name())
	assert.Equal(t, 1, registry.ProviderCount())

	health := registry.GetHealth("reference-document")
	require.NotNil(t, health)
	assert.Equal(t, gobreaker.StateClosed, health.CircuitState)
	assert.True(t, health.IsHealthy())
	assert.Nil(t, health.LastSuccessAt)

	registry.Unregister("reference-document")
	assert.Equal(t, 0, registry.ProviderCount())
	assert.Nil(t, registry.GetHealth("reference-document"))
}

func TestRegistry_RecordsOutcomes(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	registry := resilience.NewRegistry()
	cfg := fastConfig("outcomes", 0)
	cfg.Registry = registry
	client := resilience.NewClient(cfg)

	_, err := client.Fetch(context.Background(), server.URL, 1024)
	require.Error(t, err)

	health := registry.GetHealth("outcomes")
	require.NotNil(t, health)
	require.NotNil(t, health.LastFailureAt)
	assert.WithinDuration(t, time.Now(), *health.LastFailureAt, time.Second)
	assert.Contains(t, health.LastError, "server error")
	assert.Nil(t, health.LastSuccessAt)

	fail.Store(false)
	_, err = client.Fetch(context.Background(), server.URL, 1024)
	require.NoError(t, err)

	health = registry.GetHealth("outcomes")
	require.NotNil(t, health.LastSuccessAt)
	assert.Equal(t, uint32(2), health.Counts.Requests)
}

func TestRegistry_GetAllHealth_Sorted(t *testing.T) {
	registry := resilience.NewRegistry()
	for _, name := range []string{"c", "a", "b"} {
		cfg := resilience.DefaultClientConfig(name)
		cfg.Registry = registry
		_ = resilience.NewClient(cfg)
	}

	all := registry.GetAllHealth()
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Name)
	assert.Equal(t, "b", all[1].Name)
	assert.Equal(t, "c", all[2].Name)
}

func TestRegistry_UnknownNames(t *testing.T) {
	registry := resilience.NewRegistry()

	assert.Nil(t, registry.GetHealth("missing"))
	assert.NotPanics(t, func() {
		registry.RecordSuccess("missing")
		registry.RecordFailure("missing", assert.AnError)
	})
	assert.Empty(t, registry.GetAllHealth())
}

func TestProviderHealth_States(t *testing.T) {
	tests := []struct {
		state     gobreaker.State
		healthy   bool
		degraded  bool
		unhealthy bool
	}{
		{gobreaker.StateClosed, true, false, false},
		{gobreaker.StateHalfOpen, false, true, false},
		{gobreaker.StateOpen, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			h := &resilience.ProviderHealth{CircuitState: tt.state}
			assert.Equal(t, tt.healthy, h.IsHealthy())
			assert.Equal(t, tt.degraded, h.IsDegraded())
			assert.Equal(t, tt.unhealthy, h.IsUnhealthy())
		})
	}
}
