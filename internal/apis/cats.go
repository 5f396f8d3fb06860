package apis

import (
	"context"
	"fmt"
)

// CatImage is one image from the cat API.
type CatImage struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// RandomCat returns one random cat image.
func (c *Client) RandomCat(ctx context.Context) (*CatImage, error) {
	var resp []CatImage
	if err := c.http.GetJSON(ctx, c.url(c.endpoints.CatAPI, "/images/search"), &resp); err != nil {
		return nil, fmt.Errorf("fetching cat image: %w", err)
	}
	if len(resp) == 0 || resp[0].URL == "" {
		return nil, fmt.Errorf("fetching cat image: %w: no images", ErrMalformed)
	}
	return &resp[0], nil
}
