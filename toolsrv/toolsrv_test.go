package toolsrv_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/omniagent-io/omniagent/services"
	"github.com/omniagent-io/omniagent/store"
	"github.com/omniagent-io/omniagent/toolsrv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupToolset(t *testing.T) (*toolsrv.Toolset, store.ContextStore) {
	t.Helper()
	srv := httptest.NewServer(services.NewServer(1).Handler())
	t.Cleanup(srv.Close)

	ctxStore := store.NewMemoryStore()
	ts := toolsrv.New(services.NewClient(srv.URL), ctxStore, "sess-1")
	return ts, ctxStore
}

func findTool(t *testing.T, ts *toolsrv.Toolset, name string) interface {
	Call(context.Context, string) (string, error)
	Parameters() any
} {
	t.Helper()
	for _, tool := range ts.Tools() {
		if tool.Name() == name {
			return tool
		}
	}
	t.Fatalf("tool not found: %s", name)
	return nil
}

func TestToolsCatalog(t *testing.T) {
	ts, _ := setupToolset(t)
	list := ts.Tools()
	require.Len(t, list, 8)

	names := make([]string, 0, len(list))
	for _, tool := range list {
		names = append(names, tool.Name())
		assert.NotEmpty(t, tool.Description())
		require.NotNil(t, tool.Parameters())
	}
	assert.Equal(t, []string{
		"get_weather",
		"convert_currency",
		"member_lookup",
		"flight_search",
		"book_flight",
		"movie_search",
		"book_movie",
		"get_session_context",
	}, names)
}

func TestToolParametersSchema(t *testing.T) {
	ts, _ := setupToolset(t)
	tool := findTool(t, ts, toolsrv.FlightSearchToolName)

	bs, err := json.Marshal(tool.Parameters())
	require.NoError(t, err)

	var sc struct {
		Type       string         `json:"type"`
		Properties map[string]any `json:"properties"`
		Required   []string       `json:"required"`
	}
	require.NoError(t, json.Unmarshal(bs, &sc))
	assert.Equal(t, "object", sc.Type)
	assert.Contains(t, sc.Properties, "origin")
	assert.Contains(t, sc.Properties, "destination")
	assert.Contains(t, sc.Properties, "date")
	assert.Equal(t, []string{"origin", "destination", "date"}, sc.Required)
}

func TestWeatherTool(t *testing.T) {
	ts, _ := setupToolset(t)
	tool := findTool(t, ts, toolsrv.WeatherToolName)
	ctx := context.Background()

	res, err := tool.Call(ctx, `{"location": "London"}`)
	require.NoError(t, err)
	assert.Contains(t, res, "Weather in London:")
	assert.Contains(t, res, "Temperature:")
	assert.Contains(t, res, "Humidity:")

	_, err = tool.Call(ctx, `{}`)
	assert.EqualError(t, err, "invalid request: Key: 'WeatherRequest.Location' Error:Field validation for 'Location' failed on the 'required' tag")
}

func TestCurrencyTool(t *testing.T) {
	ts, _ := setupToolset(t)
	tool := findTool(t, ts, toolsrv.CurrencyToolName)
	ctx := context.Background()

	res, err := tool.Call(ctx, `{"from_currency": "USD", "to_currency": "EUR", "amount": 100}`)
	require.NoError(t, err)
	assert.Equal(t, "100 USD = 92 EUR (rate: 0.92)", res)

	res, err = tool.Call(ctx, `{"from_currency": "USD", "to_currency": "XYZ", "amount": 100}`)
	require.NoError(t, err)
	assert.Equal(t, "Currency pair USD->XYZ is not supported.", res)
}

func TestMemberToolSessionContext(t *testing.T) {
	ts, ctxStore := setupToolset(t)
	member := findTool(t, ts, toolsrv.MemberToolName)
	session := findTool(t, ts, toolsrv.SessionContextToolName)
	ctx := context.Background()

	res, err := session.Call(ctx, `{}`)
	require.NoError(t, err)
	assert.Equal(t, "No session context available. Use member_lookup first.", res)

	res, err = member.Call(ctx, `{"email": "test@email.com"}`)
	require.NoError(t, err)
	assert.Contains(t, res, "Name: Alice Johnson")
	assert.Contains(t, res, "Member ID: MEM-1001")
	assert.Contains(t, res, "Tier: Gold")
	assert.Contains(t, res, "Points: 52400")

	state, err := ctxStore.All(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"member_id":   "MEM-1001",
		"member_name": "Alice Johnson",
		"member_tier": "Gold",
	}, state)

	res, err = session.Call(ctx, `{}`)
	require.NoError(t, err)
	assert.Equal(t, "Current Session Context:\n"+
		"  member_id: MEM-1001\n"+
		"  member_name: Alice Johnson\n"+
		"  member_tier: Gold", res)
}

func TestMemberToolNotFound(t *testing.T) {
	ts, ctxStore := setupToolset(t)
	tool := findTool(t, ts, toolsrv.MemberToolName)
	ctx := context.Background()

	res, err := tool.Call(ctx, `{"email": "nobody@example.com"}`)
	require.NoError(t, err)
	assert.Contains(t, res, "Name: Unknown")
	assert.Contains(t, res, "Member ID: N/A")

	state, err := ctxStore.All(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, state)
}

func TestFlightTools(t *testing.T) {
	ts, _ := setupToolset(t)
	search := findTool(t, ts, toolsrv.FlightSearchToolName)
	book := findTool(t, ts, toolsrv.BookFlightToolName)
	ctx := context.Background()

	res, err := search.Call(ctx, `{"origin": "JFK", "destination": "LHR", "date": "2026-09-01"}`)
	require.NoError(t, err)
	assert.Contains(t, res, "Flights from JFK to LHR on 2026-09-01:")
	assert.Contains(t, res, "[FL-")
	assert.Contains(t, res, "Depart:")

	res, err = book.Call(ctx, `{"flight_id": "FL-1234", "member_id": "MEM-1001"}`)
	require.NoError(t, err)
	assert.Contains(t, res, "Booking Confirmed!")
	assert.Contains(t, res, "Confirmation Code: CONF-")
	assert.Contains(t, res, "Flight: FL-1234")
	assert.Contains(t, res, "Status: confirmed")
}

func TestMovieTools(t *testing.T) {
	ts, _ := setupToolset(t)
	search := findTool(t, ts, toolsrv.MovieSearchToolName)
	book := findTool(t, ts, toolsrv.BookMovieToolName)
	ctx := context.Background()

	res, err := search.Call(ctx, `{"genre": "sci-fi"}`)
	require.NoError(t, err)
	assert.Contains(t, res, "Movies playing (sci-fi):")
	assert.Contains(t, res, "[MOV-301] Quantum Horizon | Rating: 8.4/10 | Showtime: 7:00 PM")

	res, err = search.Call(ctx, `{"genre": "horror"}`)
	require.NoError(t, err)
	assert.Equal(t, "No movies found for genre: horror. Try: sci-fi, action, comedy, drama.", res)

	res, err = book.Call(ctx, `{"movie_id": "MOV-301", "seats": 2}`)
	require.NoError(t, err)
	assert.Contains(t, res, "Movie Tickets Booked!")
	assert.Contains(t, res, "Ticket ID: TKT-")
	assert.Contains(t, res, "Seats: 2")
}

func TestBadInput(t *testing.T) {
	ts, _ := setupToolset(t)
	tool := findTool(t, ts, toolsrv.WeatherToolName)

	_, err := tool.Call(context.Background(), `not json`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal input")
}

func TestNewMCPServer(t *testing.T) {
	ts, _ := setupToolset(t)
	srv, err := toolsrv.NewMCPServer(ts, "0.1.0")
	require.NoError(t, err)
	require.NotNil(t, srv)
}
