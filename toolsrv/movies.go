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
	MovieSearchToolName = "movie_search"
	BookMovieToolName   = "book_movie"
)

// MovieSearchRequest is the input of the movie_search tool.
type MovieSearchRequest struct {
	Genre string `json:"genre" yaml:"genre" validate:"required" jsonschema:"title=genre,description=The movie genre to search for (sci-fi or action or comedy or drama)."`
}

type movieSearchTool struct {
	ts *Toolset
}

var _ tools.Tool[MovieSearchRequest, services.MovieSearchResponse] = (*movieSearchTool)(nil)

func (t *movieSearchTool) Name() string {
	return MovieSearchToolName
}

func (t *movieSearchTool) Description() string {
	return "Search for currently playing movies by genre. " +
		"Available genres: sci-fi, action, comedy, drama. " +
		"Returns a list of movies with IDs, titles, ratings, and showtimes. " +
		"Use the movie_id from these results to book via the book_movie tool."
}

func (t *movieSearchTool) Parameters() any {
	return parameters(MovieSearchRequest{})
}

func (t *movieSearchTool) Run(ctx context.Context, req *MovieSearchRequest) (*services.MovieSearchResponse, error) {
	if err := t.ts.validate.Struct(req); err != nil {
		return nil, errors.WithMessage(err, "invalid request")
	}
	return t.ts.client.SearchMovies(ctx, req.Genre)
}

func (t *movieSearchTool) Call(ctx context.Context, input string) (string, error) {
	var req MovieSearchRequest
	if err := json.Unmarshal(llmutils.CleanJSON([]byte(input)), &req); err != nil {
		return "", errors.WithMessage(err, "failed to unmarshal input")
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	if len(res.Movies) == 0 {
		return fmt.Sprintf("No movies found for genre: %s. Try: sci-fi, action, comedy, drama.", req.Genre), nil
	}
	lines := []string{
		fmt.Sprintf("Movies playing (%s):\n", res.Genre),
	}
	for _, m := range res.Movies {
		lines = append(lines, fmt.Sprintf("  [%s] %s | Rating: %v/10 | Showtime: %s",
			m.MovieID, m.Title, m.Rating, m.Showtime))
	}
	return strings.Join(lines, "\n"), nil
}

// BookMovieRequest is the input of the book_movie tool.
type BookMovieRequest struct {
	MovieID string `json:"movie_id" yaml:"movie_id" validate:"required" jsonschema:"title=movie_id,description=The movie ID from a previous movie_search result (e.g. MOV-301)."`
	Seats   int    `json:"seats" yaml:"seats" validate:"required,gt=0" jsonschema:"title=seats,description=Number of seats/tickets to book (e.g. 2)."`
}

type bookMovieTool struct {
	ts *Toolset
}

var _ tools.Tool[BookMovieRequest, services.MovieTicket] = (*bookMovieTool)(nil)

func (t *bookMovieTool) Name() string {
	return BookMovieToolName
}

func (t *bookMovieTool) Description() string {
	return "Book movie tickets for a specific movie. " +
		"Returns a digital ticket stub with ticket ID, seat count, total price, and status."
}

func (t *bookMovieTool) Parameters() any {
	return parameters(BookMovieRequest{})
}

func (t *bookMovieTool) Run(ctx context.Context, req *BookMovieRequest) (*services.MovieTicket, error) {
	if err := t.ts.validate.Struct(req); err != nil {
		return nil, errors.WithMessage(err, "invalid request")
	}
	return t.ts.client.BookMovie(ctx, req.MovieID, req.Seats)
}

func (t *bookMovieTool) Call(ctx context.Context, input string) (string, error) {
	var req BookMovieRequest
	if err := json.Unmarshal(llmutils.CleanJSON([]byte(input)), &req); err != nil {
		return "", errors.WithMessage(err, "failed to unmarshal input")
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Movie Tickets Booked!\n"+
		"  Ticket ID: %s\n"+
		"  Movie: %s\n"+
		"  Seats: %d\n"+
		"  Total: $%v\n"+
		"  Status: %s",
		res.TicketID, res.MovieID, res.Seats, res.TotalPriceUSD, res.Status), nil
}
