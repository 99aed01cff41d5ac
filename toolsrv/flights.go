package toolsrv

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/omniagent-io/omniagent/pkg/llmutils"
	"github.com/omniagent-io/omniagent/services"
	"github.com/omniagent-io/omniagent/tools"
)

const (
	FlightSearchToolName = "flight_search"
	BookFlightToolName   = "book_flight"
)

// FlightSearchRequest is the input of the flight_search tool.
type FlightSearchRequest struct {
	Origin      string `json:"origin" yaml:"origin" validate:"required" jsonschema:"title=origin,description=Departure city or airport code (e.g. JFK)."`
	Destination string `json:"destination" yaml:"destination" validate:"required" jsonschema:"title=destination,description=Arrival city or airport code (e.g. LHR)."`
	Date        string `json:"date" yaml:"date" validate:"required" jsonschema:"title=date,description=Travel date in YYYY-MM-DD format."`
}

type flightSearchTool struct {
	ts *Toolset
}

var _ tools.Tool[FlightSearchRequest, services.FlightSearchResponse] = (*flightSearchTool)(nil)

func (t *flightSearchTool) Name() string {
	return FlightSearchToolName
}

func (t *flightSearchTool) Description() string {
	return "Search for available flights between two cities on a specific date. " +
		"Returns a list of available flights with flight IDs, airlines, times, and prices. " +
		"Use the flight_id from these results to book via the book_flight tool."
}

func (t *flightSearchTool) Parameters() any {
	return parameters(FlightSearchRequest{})
}

func (t *flightSearchTool) Run(ctx context.Context, req *FlightSearchRequest) (*services.FlightSearchResponse, error) {
	if err := t.ts.validate.Struct(req); err != nil {
		return nil, errors.WithMessage(err, "invalid request")
	}
	return t.ts.client.SearchFlights(ctx, req.Origin, req.Destination, req.Date)
}

func (t *flightSearchTool) Call(ctx context.Context, input string) (string, error) {
	var req FlightSearchRequest
	if err := json.Unmarshal(llmutils.CleanJSON([]byte(input)), &req); err != nil {
		return "", errors.WithMessage(err, "failed to unmarshal input")
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	lines := []string{
		fmt.Sprintf("Flights from %s to %s on %s:\n", res.Origin, res.Destination, res.Date),
	}
	for _, f := range res.Flights {
		lines = append(lines, fmt.Sprintf("  [%s] %s | Depart: %s → Arrive: %s | $%v",
			f.FlightID, f.Airline, f.Departure, f.Arrival, f.PriceUSD))
	}
	return strings.Join(lines, "\n"), nil
}

// BookFlightRequest is the input of the book_flight tool.
type BookFlightRequest struct {
	FlightID string `json:"flight_id" yaml:"flight_id" validate:"required" jsonschema:"title=flight_id,description=The flight ID from a previous flight_search result (e.g. FL-1234)."`
	MemberID string `json:"member_id" yaml:"member_id" validate:"required" jsonschema:"title=member_id,description=The member's ID from a previous member_lookup result (e.g. MEM-1001)."`
}

type bookFlightTool struct {
	ts *Toolset
}

var _ tools.Tool[BookFlightRequest, services.BookingConfirmation] = (*bookFlightTool)(nil)

func (t *bookFlightTool) Name() string {
	return BookFlightToolName
}

func (t *bookFlightTool) Description() string {
	return "Book a specific flight for a loyalty program member. " +
		"Returns a booking confirmation with a confirmation code and status."
}

func (t *bookFlightTool) Parameters() any {
	return parameters(BookFlightRequest{})
}

func (t *bookFlightTool) Run(ctx context.Context, req *BookFlightRequest) (*services.BookingConfirmation, error) {
	if err := t.ts.validate.Struct(req); err != nil {
		return nil, errors.WithMessage(err, "invalid request")
	}
	return t.ts.client.BookFlight(ctx, req.FlightID, req.MemberID)
}

func (t *bookFlightTool) Call(ctx context.Context, input string) (string, error) {
	var req BookFlightRequest
	if err := json.Unmarshal(llmutils.CleanJSON([]byte(input)), &req); err != nil {
		return "", errors.WithMessage(err, "failed to unmarshal input")
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Booking Confirmed!\n"+
		"  Confirmation Code: %s\n"+
		"  Flight: %s\n"+
		"  Member: %s\n"+
		"  Status: %s",
		res.ConfirmationCode, res.FlightID, res.MemberID, res.Status), nil
}
