package services

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/omniagent-io/omniagent", "services")

// Server serves the mock domain data over HTTP.
type Server struct {
	faker *gofakeit.Faker
}

// NewServer returns a mock services server.
// Seed 0 produces non-deterministic data; tests pass a fixed seed.
func NewServer(seed uint64) *Server {
	return &Server{
		faker: gofakeit.New(seed),
	}
}

// Handler returns the HTTP handler serving all endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /weather", s.handleWeather)
	mux.HandleFunc("GET /convert", s.handleConvert)
	mux.HandleFunc("GET /member", s.handleMember)
	mux.HandleFunc("GET /flights", s.handleFlights)
	mux.HandleFunc("POST /book_flight", s.handleBookFlight)
	mux.HandleFunc("GET /movies", s.handleMovies)
	mux.HandleFunc("POST /book_movie", s.handleBookMovie)
	return mux
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	writeJSON(w, WeatherResponse{
		Location:     location,
		TemperatureC: round1(s.faker.Float64Range(-5, 42)),
		Condition:    s.faker.RandomString(conditions),
		Humidity:     s.faker.Number(20, 95),
		WindKph:      round1(s.faker.Float64Range(0, 60)),
	})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from := strings.ToUpper(q.Get("from_currency"))
	to := strings.ToUpper(q.Get("to_currency"))
	amount, _ := strconv.ParseFloat(q.Get("amount"), 64)

	res := CurrencyResponse{
		FromCurrency: from,
		ToCurrency:   to,
		Amount:       amount,
	}
	if rate, ok := exchangeRates[currencyPair{from, to}]; ok {
		res.Rate = rate
		res.Converted = round2(amount * rate)
	}
	writeJSON(w, res)
}

func (s *Server) handleMember(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	member, ok := members[strings.ToLower(email)]
	if !ok {
		writeJSON(w, MemberResponse{
			Email:    email,
			Name:     "Unknown",
			MemberID: "N/A",
			Tier:     "None",
		})
		return
	}
	member.Email = email
	writeJSON(w, member)
}

func (s *Server) handleFlights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	origin := strings.ToUpper(q.Get("origin"))
	destination := strings.ToUpper(q.Get("destination"))
	date := q.Get("date")

	count := s.faker.Number(2, 3)
	flights := make([]Flight, 0, count)
	for i := 0; i < count; i++ {
		depHour := s.faker.Number(6, 20)
		arrHour := (depHour + s.faker.Number(2, 8)) % 24
		flights = append(flights, Flight{
			FlightID:    fmt.Sprintf("FL-%d", s.faker.Number(1000, 9999)),
			Airline:     s.faker.RandomString(airlines),
			Origin:      origin,
			Destination: destination,
			Date:        date,
			Departure:   fmt.Sprintf("%02d:%s", depHour, s.faker.RandomString(departureMinutes)),
			Arrival:     fmt.Sprintf("%02d:%s", arrHour, s.faker.RandomString(departureMinutes)),
			PriceUSD:    round2(s.faker.Float64Range(150, 1200)),
		})
	}
	writeJSON(w, FlightSearchResponse{
		Origin:      origin,
		Destination: destination,
		Date:        date,
		Flights:     flights,
	})
}

func (s *Server) handleBookFlight(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, BookingConfirmation{
		ConfirmationCode: "CONF-" + s.faker.Regex("[A-Z0-9]{6}"),
		FlightID:         q.Get("flight_id"),
		MemberID:         q.Get("member_id"),
		Status:           "confirmed",
	})
}

func (s *Server) handleMovies(w http.ResponseWriter, r *http.Request) {
	genre := strings.ToLower(r.URL.Query().Get("genre"))
	list := moviesByGenre[genre]
	movies := make([]Movie, 0, len(list))
	for _, m := range list {
		m.Genre = genre
		movies = append(movies, m)
	}
	writeJSON(w, MovieSearchResponse{
		Genre:  genre,
		Movies: movies,
	})
}

func (s *Server) handleBookMovie(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	seats, _ := strconv.Atoi(q.Get("seats"))
	writeJSON(w, MovieTicket{
		TicketID:      "TKT-" + s.faker.Regex("[A-Z0-9]{6}"),
		MovieID:       q.Get("movie_id"),
		Seats:         seats,
		TotalPriceUSD: round2(float64(seats) * s.faker.Float64Range(10, 18)),
		Status:        "confirmed",
	})
}

func writeJSON(w http.ResponseWriter, val any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(val); err != nil {
		logger.KV(xlog.ERROR, "reason", "encode_response", "err", err.Error())
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
