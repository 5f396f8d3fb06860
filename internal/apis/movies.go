package apis

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Movie is one entry of the trending list.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`

	// PosterURL is the absolute poster URL, empty when the movie has none.
	PosterURL string `json:"-"`
}

// Year is the release year, or "" when unknown.
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

type trendingResponse struct {
	Page    int     `json:"page"`
	Results []Movie `json:"results"`
}

// TrendingMovies returns this week's trending movies.
func (c *Client) TrendingMovies(ctx context.Context) ([]Movie, error) {
	if c.tmdbKey == "" {
		return nil, fmt.Errorf("fetching trending movies: %w", ErrMissingAPIKey)
	}

	q := url.Values{}
	q.Set("api_key", c.tmdbKey)

	var resp trendingResponse
	if err := c.http.GetJSON(ctx, c.url(c.endpoints.Movies, "/trending/movie/week?"+q.Encode()), &resp); err != nil {
		return nil, fmt.Errorf("fetching trending movies: %w", &redactedError{err: err, secret: c.tmdbKey})
	}
	if resp.Results == nil {
		return nil, fmt.Errorf("fetching trending movies: %w: no results", ErrMalformed)
	}

	posters := strings.TrimRight(c.endpoints.MoviePosters, "/")
	for i := range resp.Results {
		if p := resp.Results[i].PosterPath; p != "" {
			resp.Results[i].PosterURL = posters + p
		}
	}
	return resp.Results, nil
}

// redactedError hides secret in the message of err while keeping it
// unwrappable.
type redactedError struct {
	err    error
	secret string
}

func (e *redactedError) Error() string {
	return strings.ReplaceAll(e.err.Error(), e.secret, "REDACTED")
}

func (e *redactedError) Unwrap() error { return e.err }
