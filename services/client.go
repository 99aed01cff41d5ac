package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cockroachdb/errors"
)

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// Client calls the mock domain services over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the services at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetWeather returns current weather for a location.
func (c *Client) GetWeather(ctx context.Context, location string) (*WeatherResponse, error) {
	q := url.Values{"location": {location}}
	var res WeatherResponse
	if err := c.get(ctx, "/weather", q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ConvertCurrency converts an amount between two currencies.
func (c *Client) ConvertCurrency(ctx context.Context, from, to string, amount float64) (*CurrencyResponse, error) {
	q := url.Values{
		"from_currency": {from},
		"to_currency":   {to},
		"amount":        {strconv.FormatFloat(amount, 'f', -1, 64)},
	}
	var res CurrencyResponse
	if err := c.get(ctx, "/convert", q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// LookupMember returns the loyalty profile for an email address.
func (c *Client) LookupMember(ctx context.Context, email string) (*MemberResponse, error) {
	q := url.Values{"email": {email}}
	var res MemberResponse
	if err := c.get(ctx, "/member", q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SearchFlights returns available flights between two airports on a date.
func (c *Client) SearchFlights(ctx context.Context, origin, destination, date string) (*FlightSearchResponse, error) {
	q := url.Values{
		"origin":      {origin},
		"destination": {destination},
		"date":        {date},
	}
	var res FlightSearchResponse
	if err := c.get(ctx, "/flights", q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// BookFlight books a flight for a member.
func (c *Client) BookFlight(ctx context.Context, flightID, memberID string) (*BookingConfirmation, error) {
	q := url.Values{
		"flight_id": {flightID},
		"member_id": {memberID},
	}
	var res BookingConfirmation
	if err := c.post(ctx, "/book_flight", q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SearchMovies returns currently playing movies for a genre.
func (c *Client) SearchMovies(ctx context.Context, genre string) (*MovieSearchResponse, error) {
	q := url.Values{"genre": {genre}}
	var res MovieSearchResponse
	if err := c.get(ctx, "/movies", q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// BookMovie books seats for a movie.
func (c *Client) BookMovie(ctx context.Context, movieID string, seats int) (*MovieTicket, error) {
	q := url.Values{
		"movie_id": {movieID},
		"seats":    {strconv.Itoa(seats)},
	}
	var res MovieTicket
	if err := c.post(ctx, "/book_movie", q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, q, out)
}

func (c *Client) post(ctx context.Context, path string, q url.Values, out any) error {
	return c.do(ctx, http.MethodPost, path, q, out)
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, out any) error {
	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, q.Encode())
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return errors.WithMessagef(err, "failed to create request: %s", path)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithMessagef(err, "request failed: %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf("unexpected status %d: %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.WithMessagef(err, "failed to decode response: %s", path)
	}
	return nil
}
