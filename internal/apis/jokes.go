package apis

import (
	"context"
	"fmt"
)

// Joke is a two-part joke.
type Joke struct {
	ID        int    `json:"id"`
	Type      string `json:"type"`
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}

// RandomJoke returns one random joke.
func (c *Client) RandomJoke(ctx context.Context) (*Joke, error) {
	var joke Joke
	if err := c.http.GetJSON(ctx, c.url(c.endpoints.Jokes, "/random_joke"), &joke); err != nil {
		return nil, fmt.Errorf("fetching joke: %w", err)
	}
	if joke.Setup == "" || joke.Punchline == "" {
		return nil, fmt.Errorf("fetching joke: %w: empty joke", ErrMalformed)
	}
	return &joke, nil
}
