// Package apis holds typed clients for the public web APIs behind the
// dashboard panels.
package apis

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ziadkadry99/apidash/internal/httpclient"
)

var (
	// ErrNotFound means the upstream has nothing for the requested input.
	ErrNotFound = errors.New("not found")
	// ErrMissingAPIKey means a keyed API was called without a key.
	ErrMissingAPIKey = errors.New("missing API key")
	// ErrMalformed means the upstream answered with an unexpected body.
	ErrMalformed = httpclient.ErrMalformed
)

// InputError reports invalid user input. Its message is meant for display.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

// JSONGetter fetches a URL and decodes its JSON body.
type JSONGetter interface {
	GetJSON(ctx context.Context, url string, out any) error
}

// Endpoints holds the base URL of every upstream API.
type Endpoints struct {
	DogAPI       string
	CatAPI       string
	Currency     string
	Geocoding    string
	Forecast     string
	Jokes        string
	Movies       string
	MoviePosters string
	Users        string
}

// Client calls the upstream APIs.
type Client struct {
	http      JSONGetter
	endpoints Endpoints
	tmdbKey   string
}

// NewClient creates a Client. tmdbKey may be empty, in which case
// TrendingMovies always fails with ErrMissingAPIKey.
func NewClient(getter JSONGetter, endpoints Endpoints, tmdbKey string) *Client {
	return &Client{
		http:      getter,
		endpoints: endpoints,
		tmdbKey:   tmdbKey,
	}
}

func (c *Client) url(base string, path string) string {
	return strings.TrimRight(base, "/") + path
}

// notFound converts an upstream 404 into ErrNotFound.
func notFound(err error) error {
	var se *httpclient.StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
