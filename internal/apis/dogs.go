package apis

import (
	"context"
	"fmt"
)

// MaxDogs is the largest batch the dog API serves in one call.
const MaxDogs = 50

type dogResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type dogsResponse struct {
	Message []string `json:"message"`
	Status  string   `json:"status"`
}

// RandomDog returns the URL of one random dog image.
func (c *Client) RandomDog(ctx context.Context) (string, error) {
	var resp dogResponse
	if err := c.http.GetJSON(ctx, c.url(c.endpoints.DogAPI, "/breeds/image/random"), &resp); err != nil {
		return "", fmt.Errorf("fetching dog image: %w", err)
	}
	if resp.Status != "success" || resp.Message == "" {
		return "", fmt.Errorf("fetching dog image: %w: status %q", ErrMalformed, resp.Status)
	}
	return resp.Message, nil
}

// RandomDogs returns the URLs of n random dog images. n is clamped to
// 1..MaxDogs.
func (c *Client) RandomDogs(ctx context.Context, n int) ([]string, error) {
	n = min(max(n, 1), MaxDogs)

	var resp dogsResponse
	url := c.url(c.endpoints.DogAPI, fmt.Sprintf("/breeds/image/random/%d", n))
	if err := c.http.GetJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("fetching dog images: %w", err)
	}
	if resp.Status != "success" || len(resp.Message) == 0 {
		return nil, fmt.Errorf("fetching dog images: %w: status %q", ErrMalformed, resp.Status)
	}
	return resp.Message, nil
}
