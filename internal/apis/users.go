package apis

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var loginPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]{0,38}$`)

// User is a public user profile.
type User struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	ProfileURL  string `json:"html_url"`
	Bio         string `json:"bio"`
	Location    string `json:"location"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
}

// DisplayName is the user's name, falling back to the login.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Login
}

// User looks up a profile by login.
func (c *Client) User(ctx context.Context, login string) (*User, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, &InputError{Message: "Please enter a username."}
	}
	if !loginPattern.MatchString(login) {
		return nil, &InputError{Message: "That does not look like a valid username."}
	}

	var user User
	if err := c.http.GetJSON(ctx, c.url(c.endpoints.Users, "/users/"+url.PathEscape(login)), &user); err != nil {
		return nil, fmt.Errorf("looking up user %q: %w", login, notFound(err))
	}
	if user.Login == "" {
		return nil, fmt.Errorf("looking up user %q: %w: empty profile", login, ErrMalformed)
	}
	return &user, nil
}
