package services_test

import (
	"context"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/omniagent-io/omniagent/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupClient(t *testing.T) *services.Client {
	t.Helper()
	srv := httptest.NewServer(services.NewServer(1).Handler())
	t.Cleanup(srv.Close)
	return services.NewClient(srv.URL)
}

func TestWeather(t *testing.T) {
	client := setupClient(t)
	ctx := context.Background()

	res, err := client.GetWeather(ctx, "Paris")
	require.NoError(t, err)
	assert.Equal(t, "Paris", res.Location)
	assert.GreaterOrEqual(t, res.TemperatureC, -5.0)
	assert.LessOrEqual(t, res.TemperatureC, 42.0)
	assert.NotEmpty(t, res.Condition)
	assert.GreaterOrEqual(t, res.Humidity, 20)
	assert.LessOrEqual(t, res.Humidity, 95)
}

func TestConvertCurrency(t *testing.T) {
	client := setupClient(t)
	ctx := context.Background()

	t.Run("known_pair", func(t *testing.T) {
		res, err := client.ConvertCurrency(ctx, "usd", "eur", 100)
		require.NoError(t, err)
		assert.Equal(t, "USD", res.FromCurrency)
		assert.Equal(t, "EUR", res.ToCurrency)
		assert.Equal(t, 0.92, res.Rate)
		assert.Equal(t, 92.0, res.Converted)
	})

	t.Run("unsupported_pair", func(t *testing.T) {
		res, err := client.ConvertCurrency(ctx, "USD", "XYZ", 100)
		require.NoError(t, err)
		assert.Zero(t, res.Rate)
		assert.Zero(t, res.Converted)
	})
}

func TestLookupMember(t *testing.T) {
	client := setupClient(t)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		res, err := client.LookupMember(ctx, "test@email.com")
		require.NoError(t, err)
		assert.Equal(t, "Alice Johnson", res.Name)
		assert.Equal(t, "MEM-1001", res.MemberID)
		assert.Equal(t, "Gold", res.Tier)
		assert.Equal(t, 52400, res.Points)
	})

	t.Run("not_found", func(t *testing.T) {
		res, err := client.LookupMember(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Unknown", res.Name)
		assert.Equal(t, "N/A", res.MemberID)
		assert.Equal(t, "None", res.Tier)
	})
}

func TestSearchFlights(t *testing.T) {
	client := setupClient(t)
	ctx := context.Background()

	res, err := client.SearchFlights(ctx, "sfo", "jfk", "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, "SFO", res.Origin)
	assert.Equal(t, "JFK", res.Destination)
	require.NotEmpty(t, res.Flights)
	assert.LessOrEqual(t, len(res.Flights), 3)

	flightID := regexp.MustCompile(`^FL-\d{4}$`)
	timeOfDay := regexp.MustCompile(`^\d{2}:(00|15|30|45)$`)
	for _, f := range res.Flights {
		assert.Regexp(t, flightID, f.FlightID)
		assert.Regexp(t, timeOfDay, f.Departure)
		assert.Regexp(t, timeOfDay, f.Arrival)
		assert.GreaterOrEqual(t, f.PriceUSD, 150.0)
		assert.LessOrEqual(t, f.PriceUSD, 1200.0)
	}
}

func TestBookFlight(t *testing.T) {
	client := setupClient(t)
	ctx := context.Background()

	res, err := client.BookFlight(ctx, "FL-1234", "MEM-1001")
	require.NoError(t, err)
	assert.Regexp(t, `^CONF-[A-Z0-9]{6}$`, res.ConfirmationCode)
	assert.Equal(t, "FL-1234", res.FlightID)
	assert.Equal(t, "MEM-1001", res.MemberID)
	assert.Equal(t, "confirmed", res.Status)
}

func TestSearchMovies(t *testing.T) {
	client := setupClient(t)
	ctx := context.Background()

	t.Run("known_genre", func(t *testing.T) {
		res, err := client.SearchMovies(ctx, "Sci-Fi")
		require.NoError(t, err)
		assert.Equal(t, "sci-fi", res.Genre)
		require.Len(t, res.Movies, 3)
		assert.Equal(t, "MOV-301", res.Movies[0].MovieID)
		assert.Equal(t, "Quantum Horizon", res.Movies[0].Title)
	})

	t.Run("unknown_genre", func(t *testing.T) {
		res, err := client.SearchMovies(ctx, "horror")
		require.NoError(t, err)
		assert.Empty(t, res.Movies)
	})
}

func TestBookMovie(t *testing.T) {
	client := setupClient(t)
	ctx := context.Background()

	res, err := client.BookMovie(ctx, "MOV-301", 3)
	require.NoError(t, err)
	assert.Regexp(t, `^TKT-[A-Z0-9]{6}$`, res.TicketID)
	assert.Equal(t, "MOV-301", res.MovieID)
	assert.Equal(t, 3, res.Seats)
	assert.GreaterOrEqual(t, res.TotalPriceUSD, 30.0)
	assert.LessOrEqual(t, res.TotalPriceUSD, 54.0)
	assert.Equal(t, "confirmed", res.Status)
}
