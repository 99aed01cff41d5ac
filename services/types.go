// Package services provides the mock domain services backing the tools:
// weather, currency conversion, loyalty members, flights, and movies.
package services

// WeatherResponse is the current weather for a location.
type WeatherResponse struct {
	Location     string  `json:"location"`
	TemperatureC float64 `json:"temperature_c"`
	Condition    string  `json:"condition"`
	Humidity     int     `json:"humidity"`
	WindKph      float64 `json:"wind_kph"`
}

// CurrencyResponse is the outcome of a currency conversion.
// Rate 0 means the currency pair is not supported.
type CurrencyResponse struct {
	FromCurrency string  `json:"from_currency"`
	ToCurrency   string  `json:"to_currency"`
	Amount       float64 `json:"amount"`
	Converted    float64 `json:"converted"`
	Rate         float64 `json:"rate"`
}

// MemberResponse is a loyalty program member profile.
// MemberID "N/A" means the member was not found.
type MemberResponse struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	MemberID string `json:"member_id"`
	Tier     string `json:"tier"`
	Points   int    `json:"points"`
}

// Flight is one available flight.
type Flight struct {
	FlightID    string  `json:"flight_id"`
	Airline     string  `json:"airline"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Date        string  `json:"date"`
	Departure   string  `json:"departure"`
	Arrival     string  `json:"arrival"`
	PriceUSD    float64 `json:"price_usd"`
}

// FlightSearchResponse is a list of available flights.
type FlightSearchResponse struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Date        string   `json:"date"`
	Flights     []Flight `json:"flights"`
}

// BookingConfirmation is a confirmed flight booking.
type BookingConfirmation struct {
	ConfirmationCode string `json:"confirmation_code"`
	FlightID         string `json:"flight_id"`
	MemberID         string `json:"member_id"`
	Status           string `json:"status"`
}

// Movie is one currently playing movie.
type Movie struct {
	MovieID  string  `json:"movie_id"`
	Title    string  `json:"title"`
	Genre    string  `json:"genre"`
	Rating   float64 `json:"rating"`
	Showtime string  `json:"showtime"`
}

// MovieSearchResponse is a list of currently playing movies for a genre.
type MovieSearchResponse struct {
	Genre  string  `json:"genre"`
	Movies []Movie `json:"movies"`
}

// MovieTicket is a digital ticket stub for a movie booking.
type MovieTicket struct {
	TicketID      string  `json:"ticket_id"`
	MovieID       string  `json:"movie_id"`
	Seats         int     `json:"seats"`
	TotalPriceUSD float64 `json:"total_price_usd"`
	Status        string  `json:"status"`
}
