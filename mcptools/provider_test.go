package mcptools_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/omniagent-io/omniagent/mcptools"
	"github.com/omniagent-io/omniagent/services"
	"github.com/omniagent-io/omniagent/store"
	"github.com/omniagent-io/omniagent/toolsrv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProvider(t *testing.T) *mcptools.Provider {
	t.Helper()
	httpSrv := httptest.NewServer(services.NewServer(1).Handler())
	t.Cleanup(httpSrv.Close)

	ts := toolsrv.New(services.NewClient(httpSrv.URL), store.NewMemoryStore(), "sess-1")
	mcpSrv, err := toolsrv.NewMCPServer(ts, "0.1.0")
	require.NoError(t, err)

	provider, err := mcptools.ConnectInProcess(context.Background(), mcpSrv)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = provider.Close()
	})
	return provider
}

func TestCatalog(t *testing.T) {
	provider := setupProvider(t)

	list := provider.Tools()
	require.Len(t, list, 8)

	names := make([]string, 0, len(list))
	for _, tool := range list {
		names = append(names, tool.Name())
		assert.NotEmpty(t, tool.Description())

		params, ok := tool.Parameters().(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "object", params["type"])
	}
	assert.Contains(t, names, "get_weather")
	assert.Contains(t, names, "book_flight")
	assert.Contains(t, names, "get_session_context")
}

func TestBridgeCall(t *testing.T) {
	provider := setupProvider(t)
	ctx := context.Background()

	var weather, session interface {
		Call(context.Context, string) (string, error)
	}
	for _, tool := range provider.Tools() {
		switch tool.Name() {
		case toolsrv.WeatherToolName:
			weather = tool
		case toolsrv.SessionContextToolName:
			session = tool
		}
	}
	require.NotNil(t, weather)
	require.NotNil(t, session)

	res, err := weather.Call(ctx, `{"location": "Tokyo"}`)
	require.NoError(t, err)
	assert.Contains(t, res, "Weather in Tokyo:")

	// No arguments at all is valid for get_session_context.
	res, err = session.Call(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "No session context available. Use member_lookup first.", res)
}

func TestBridgeCallError(t *testing.T) {
	provider := setupProvider(t)
	ctx := context.Background()

	for _, tool := range provider.Tools() {
		if tool.Name() != toolsrv.WeatherToolName {
			continue
		}
		_, err := tool.Call(ctx, `{}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed")
		return
	}
	t.Fatal("weather tool not found")
}
