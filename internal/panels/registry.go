package panels

import (
	"context"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	texttemplate "text/template"

	"github.com/ziadkadry99/apidash/internal/apis"
)

// Options tunes the built-in panels.
type Options struct {
	DogCount        int
	DefaultCity     string
	DefaultCurrency string
	Currencies      []string
	MaxMovies       int
}

// Registry is the ordered set of dashboard panels.
type Registry struct {
	panels []*Panel
	byID   map[string]*Panel
}

// Get returns the panel with the given ID.
func (r *Registry) Get(id string) (*Panel, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// List returns the panels in display order.
func (r *Registry) List() []*Panel {
	return r.panels
}

// Fetch runs the panel with the given ID.
func (r *Registry) Fetch(ctx context.Context, id string, params Params) (Result, error) {
	p, ok := r.Get(id)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownPanel, id)
	}
	return p.Fetch(ctx, params), nil
}

// currencyView is the render model of the currency panel.
type currencyView struct {
	Base      string
	UpdatedAt string
	Rates     []apis.Rate
}

// NewRegistry builds the built-in panels on top of client.
func NewRegistry(client *apis.Client, opts Options) (*Registry, error) {
	if opts.DogCount <= 0 {
		opts.DogCount = 3
	}
	if opts.MaxMovies <= 0 {
		opts.MaxMovies = 10
	}
	if opts.DefaultCurrency == "" {
		opts.DefaultCurrency = "USD"
	}

	defs := []struct {
		panel Panel
		html  string
		text  string
	}{
		{
			panel: Panel{
				ID:             "dog",
				Title:          "Random Dog",
				Button:         "Get a dog",
				Description:    dogDescription,
				FailureMessage: "Could not fetch a dog image. Please try again.",
				load: func(ctx context.Context, _ Params) (any, error) {
					return client.RandomDog(ctx)
				},
			},
			html: dogHTML,
			text: dogText,
		},
		{
			panel: Panel{
				ID:     "dogs",
				Title:  "Dog Gallery",
				Button: "Get several dogs",
				Inputs: []Input{
					{Name: "count", Label: "How many", Default: strconv.Itoa(opts.DogCount)},
				},
				Description:    dogsDescription,
				FailureMessage: "Could not fetch dog images. Please try again.",
				load: func(ctx context.Context, p Params) (any, error) {
					n, err := strconv.Atoi(strings.TrimSpace(p["count"]))
					if err != nil || n < 1 {
						return nil, &apis.InputError{Message: "Please enter a positive number of dogs."}
					}
					return client.RandomDogs(ctx, n)
				},
			},
			html: dogsHTML,
			text: dogsText,
		},
		{
			panel: Panel{
				ID:             "cat",
				Title:          "Random Cat",
				Button:         "Get a cat",
				Description:    catDescription,
				FailureMessage: "Could not fetch a cat image. Please try again.",
				load: func(ctx context.Context, _ Params) (any, error) {
					return client.RandomCat(ctx)
				},
			},
			html: catHTML,
			text: catText,
		},
		{
			panel: Panel{
				ID:     "currency",
				Title:  "Exchange Rates",
				Button: "Get rates",
				Inputs: []Input{
					{Name: "base", Label: "Base currency", Placeholder: "USD", Default: opts.DefaultCurrency},
					{Name: "symbols", Label: "Currencies", Placeholder: "EUR,GBP,JPY", Default: strings.Join(opts.Currencies, ","), Optional: true},
				},
				Description:    currencyDescription,
				FailureMessage: "Failed to load exchange rates.",
				load: func(ctx context.Context, p Params) (any, error) {
					table, err := client.Rates(ctx, p["base"])
					if err != nil {
						return nil, err
					}
					var symbols []string
					for _, s := range strings.Split(p["symbols"], ",") {
						if s = strings.TrimSpace(s); s != "" {
							symbols = append(symbols, s)
						}
					}
					rates := table.Pick(symbols)
					if len(rates) == 0 {
						return nil, &apis.InputError{Message: "None of those currencies are known."}
					}
					return currencyView{Base: table.Base, UpdatedAt: table.UpdatedAt, Rates: rates}, nil
				},
			},
			html: currencyHTML,
			text: currencyText,
		},
		{
			panel: Panel{
				ID:     "weather",
				Title:  "Weather",
				Button: "Get weather",
				Inputs: []Input{
					{Name: "city", Label: "City", Placeholder: "Paris", Default: opts.DefaultCity},
				},
				Description:    weatherDescription,
				FailureMessage: "Could not load the weather for that city.",
				load: func(ctx context.Context, p Params) (any, error) {
					return client.Weather(ctx, p["city"])
				},
			},
			html: weatherHTML,
			text: weatherText,
		},
		{
			panel: Panel{
				ID:             "joke",
				Title:          "Random Joke",
				Button:         "Tell me a joke",
				Description:    jokeDescription,
				FailureMessage: "Failed to fetch a joke.",
				load: func(ctx context.Context, _ Params) (any, error) {
					return client.RandomJoke(ctx)
				},
			},
			html: jokeHTML,
			text: jokeText,
		},
		{
			panel: Panel{
				ID:             "movies",
				Title:          "Trending Movies",
				Button:         "Show trending",
				Description:    moviesDescription,
				FailureMessage: "Could not load trending movies.",
				load: func(ctx context.Context, _ Params) (any, error) {
					movies, err := client.TrendingMovies(ctx)
					if err != nil {
						return nil, err
					}
					if len(movies) > opts.MaxMovies {
						movies = movies[:opts.MaxMovies]
					}
					return movies, nil
				},
			},
			html: moviesHTML,
			text: moviesText,
		},
		{
			panel: Panel{
				ID:     "user",
				Title:  "User Lookup",
				Button: "Look up",
				Inputs: []Input{
					{Name: "username", Label: "Username", Placeholder: "octocat"},
				},
				Description:    userDescription,
				FailureMessage: "Could not find that user.",
				load: func(ctx context.Context, p Params) (any, error) {
					return client.User(ctx, p["username"])
				},
			},
			html: userHTML,
			text: userText,
		},
	}

	md := newMarkdown()
	r := &Registry{byID: make(map[string]*Panel, len(defs))}
	for _, d := range defs {
		p := d.panel

		var err error
		if p.html, err = template.New(p.ID).Parse(d.html); err != nil {
			return nil, fmt.Errorf("parsing %s html template: %w", p.ID, err)
		}
		if p.text, err = texttemplate.New(p.ID).Parse(d.text); err != nil {
			return nil, fmt.Errorf("parsing %s text template: %w", p.ID, err)
		}
		if p.DescriptionHTML, err = md.render(p.Description); err != nil {
			return nil, fmt.Errorf("rendering %s description: %w", p.ID, err)
		}

		r.panels = append(r.panels, &p)
		r.byID[p.ID] = &p
	}
	return r, nil
}
