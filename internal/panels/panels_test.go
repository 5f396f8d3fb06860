package panels

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ziadkadry99/apidash/internal/apis"
	"github.com/ziadkadry99/apidash/internal/httpclient"
)

// fakeGetter serves canned bodies keyed by URL prefix.
type fakeGetter struct {
	routes map[string]string
	errs   map[string]error
	calls  []string
}

func (f *fakeGetter) GetJSON(_ context.Context, url string, out any) error {
	f.calls = append(f.calls, url)
	for prefix, err := range f.errs {
		if strings.HasPrefix(url, prefix) {
			return err
		}
	}
	for prefix, body := range f.routes {
		if strings.HasPrefix(url, prefix) {
			if err := json.Unmarshal([]byte(body), out); err != nil {
				return fmt.Errorf("%w: %v", httpclient.ErrMalformed, err)
			}
			return nil
		}
	}
	return &httpclient.StatusError{URL: url, StatusCode: 404}
}

var testEndpoints = apis.Endpoints{
	DogAPI:       "http://up/dog",
	CatAPI:       "http://up/cat",
	Currency:     "http://up/fx",
	Geocoding:    "http://up/geo",
	Forecast:     "http://up/wx",
	Jokes:        "http://up/jokes",
	Movies:       "http://up/tmdb",
	MoviePosters: "http://img/w200",
	Users:        "http://up/gh",
}

func newTestRegistry(t *testing.T, getter *fakeGetter, opts Options) *Registry {
	t.Helper()
	reg, err := NewRegistry(apis.NewClient(getter, testEndpoints, "key"), opts)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return reg
}

func fetch(t *testing.T, reg *Registry, id string, params Params) Result {
	t.Helper()
	res, err := reg.Fetch(context.Background(), id, params)
	if err != nil {
		t.Fatalf("Fetch(%s): %v", id, err)
	}
	return res
}

func TestRegistryOrder(t *testing.T) {
	reg := newTestRegistry(t, &fakeGetter{}, Options{})
	var ids []string
	for _, p := range reg.List() {
		ids = append(ids, p.ID)
		if p.DescriptionHTML == "" {
			t.Errorf("panel %s has no rendered description", p.ID)
		}
		if p.FailureMessage == "" {
			t.Errorf("panel %s has no failure message", p.ID)
		}
	}
	want := "dog,dogs,cat,currency,weather,joke,movies,user"
	if got := strings.Join(ids, ","); got != want {
		t.Errorf("panel order = %s, want %s", got, want)
	}
}

func TestUnknownPanel(t *testing.T) {
	reg := newTestRegistry(t, &fakeGetter{}, Options{})
	_, err := reg.Fetch(context.Background(), "llama", nil)
	if !errors.Is(err, ErrUnknownPanel) {
		t.Fatalf("expected ErrUnknownPanel, got %v", err)
	}
}

func TestDogImageSourceMatchesAPI(t *testing.T) {
	const url = "https://images.dog.ceo/breeds/husky/n02110185_1469.jpg"
	reg := newTestRegistry(t, &fakeGetter{routes: map[string]string{
		"http://up/dog/breeds/image/random": `{"message":"` + url + `","status":"success"}`,
	}}, Options{})

	res := fetch(t, reg, "dog", nil)
	if !res.OK {
		t.Fatalf("expected success, got %q (%v)", res.Message, res.Err)
	}
	want := `<img class="panel-image" src="` + url + `" alt="Random dog">`
	if string(res.HTML) != want {
		t.Errorf("html = %s, want %s", res.HTML, want)
	}
	if strings.TrimSpace(res.Text) != url {
		t.Errorf("text = %q", res.Text)
	}
}

func TestFailureMessages(t *testing.T) {
	reg := newTestRegistry(t, &fakeGetter{
		routes: map[string]string{
			"http://up/jokes": `{"setup":""}`,
			"http://up/cat":   `not json`,
		},
		errs: map[string]error{
			"http://up/dog": &httpclient.StatusError{URL: "dog", StatusCode: 500},
			"http://up/fx":  errors.New("connection refused"),
		},
	}, Options{})

	tests := []struct {
		id     string
		params Params
		want   string
	}{
		{"dog", nil, "Could not fetch a dog image. Please try again."},
		{"dogs", nil, "Could not fetch dog images. Please try again."},
		{"cat", nil, "Could not fetch a cat image. Please try again."},
		{"currency", nil, "Failed to load exchange rates."},
		{"joke", nil, "Failed to fetch a joke."},
		{"user", Params{"username": "nobody"}, "Could not find that user."},
		{"weather", Params{"city": "Nowhere"}, "Could not load the weather for that city."},
	}
	for _, tt := range tests {
		res := fetch(t, reg, tt.id, tt.params)
		if res.OK {
			t.Errorf("%s: expected failure", tt.id)
			continue
		}
		if res.Message != tt.want {
			t.Errorf("%s: message = %q, want %q", tt.id, res.Message, tt.want)
		}
		if res.Invalid {
			t.Errorf("%s: upstream failure reported as invalid input", tt.id)
		}
		if res.Err == nil {
			t.Errorf("%s: underlying error not kept", tt.id)
		}
		if res.HTML != "" {
			t.Errorf("%s: failure must not render html", tt.id)
		}
	}
}

func TestInputErrors(t *testing.T) {
	getter := &fakeGetter{}
	reg := newTestRegistry(t, getter, Options{})

	tests := []struct {
		id     string
		params Params
		want   string
	}{
		{"weather", nil, "Please enter a city name."},
		{"weather", Params{"city": "  "}, "Please enter a city name."},
		{"user", Params{"username": ""}, "Please enter a username."},
		{"dogs", Params{"count": "many"}, "Please enter a positive number of dogs."},
		{"currency", Params{"base": "dollars"}, "Please enter a three-letter currency code."},
	}
	for _, tt := range tests {
		res := fetch(t, reg, tt.id, tt.params)
		if res.OK || !res.Invalid {
			t.Errorf("%s %v: expected invalid input, got %+v", tt.id, tt.params, res)
			continue
		}
		if res.Message != tt.want {
			t.Errorf("%s %v: message = %q, want %q", tt.id, tt.params, res.Message, tt.want)
		}
	}
	if len(getter.calls) != 0 {
		t.Errorf("invalid input must not reach upstream, got calls %v", getter.calls)
	}
}

func TestDefaults(t *testing.T) {
	getter := &fakeGetter{routes: map[string]string{
		"http://up/geo":           `{"results":[{"name":"Lisbon","country":"Portugal","latitude":38.7,"longitude":-9.1}]}`,
		"http://up/wx":            `{"current_weather":{"temperature":21.04,"windspeed":9.96,"weathercode":2}}`,
		"http://up/dog/breeds/im": `{"message":["a.jpg","b.jpg","c.jpg","d.jpg"],"status":"success"}`,
	}}
	reg := newTestRegistry(t, getter, Options{DefaultCity: "Lisbon", DogCount: 4})

	res := fetch(t, reg, "weather", nil)
	if !res.OK {
		t.Fatalf("weather with default city failed: %q (%v)", res.Message, res.Err)
	}
	for _, want := range []string{"Lisbon, Portugal", "⛅", "Partly cloudy", "21.0 °C", "10.0 km/h"} {
		if !strings.Contains(string(res.HTML), want) {
			t.Errorf("weather html missing %q: %s", want, res.HTML)
		}
	}

	res = fetch(t, reg, "dogs", nil)
	if !res.OK {
		t.Fatalf("dogs failed: %v", res.Err)
	}
	if got := strings.Count(string(res.HTML), "<img"); got != 4 {
		t.Errorf("expected 4 images, got %d", got)
	}
	if last := getter.calls[len(getter.calls)-1]; !strings.HasSuffix(last, "/random/4") {
		t.Errorf("dogs requested %s, want count 4", last)
	}

	// An explicitly empty city overrides the default.
	res = fetch(t, reg, "weather", Params{"city": ""})
	if !res.Invalid {
		t.Errorf("expected invalid input for explicit empty city, got %+v", res)
	}
}

func TestCurrencyPanel(t *testing.T) {
	reg := newTestRegistry(t, &fakeGetter{routes: map[string]string{
		"http://up/fx/latest/USD": `{"result":"success","base_code":"USD","time_last_update_utc":"today","rates":{"USD":1,"EUR":0.92,"JPY":149.5}}`,
	}}, Options{Currencies: []string{"EUR", "JPY"}})

	res := fetch(t, reg, "currency", nil)
	if !res.OK {
		t.Fatalf("currency failed: %q (%v)", res.Message, res.Err)
	}
	html := string(res.HTML)
	if !strings.Contains(html, "<th scope=\"row\">EUR</th><td>0.9200</td>") {
		t.Errorf("missing EUR row: %s", html)
	}
	if strings.Contains(html, ">USD<") {
		t.Errorf("USD was not requested: %s", html)
	}

	res = fetch(t, reg, "currency", Params{"symbols": "XYZ"})
	if !res.Invalid || res.Message != "None of those currencies are known." {
		t.Errorf("unexpected result for unknown symbols: %+v", res)
	}
}

func TestMoviesPanel(t *testing.T) {
	var movies []string
	for i := 0; i < 15; i++ {
		movies = append(movies, fmt.Sprintf(`{"id":%d,"title":"Movie %d","poster_path":"/p%d.jpg","release_date":"2026-01-01","vote_average":7}`, i, i, i))
	}
	reg := newTestRegistry(t, &fakeGetter{routes: map[string]string{
		"http://up/tmdb/trending/movie/week": `{"results":[` + strings.Join(movies, ",") + `]}`,
	}}, Options{MaxMovies: 5})

	res := fetch(t, reg, "movies", nil)
	if !res.OK {
		t.Fatalf("movies failed: %v", res.Err)
	}
	if got := strings.Count(string(res.HTML), "<li>"); got != 5 {
		t.Errorf("expected 5 movies, got %d", got)
	}
	if !strings.Contains(string(res.HTML), `src="http://img/w200/p0.jpg"`) {
		t.Errorf("missing poster: %s", res.HTML)
	}
	if !strings.Contains(res.Text, "- Movie 0 (2026) ★ 7.0") {
		t.Errorf("unexpected text: %s", res.Text)
	}
}

func TestMoviesMissingKey(t *testing.T) {
	reg, err := NewRegistry(apis.NewClient(&fakeGetter{}, testEndpoints, ""), Options{})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	res := fetch(t, reg, "movies", nil)
	if res.OK || res.Message != "Could not load trending movies." {
		t.Errorf("unexpected result: %+v", res)
	}
	if !errors.Is(res.Err, apis.ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", res.Err)
	}
}

func TestEscapesUpstreamContent(t *testing.T) {
	reg := newTestRegistry(t, &fakeGetter{routes: map[string]string{
		"http://up/jokes": `{"setup":"<script>alert(1)</script>","punchline":"ok"}`,
		"http://up/dog":   `{"message":"javascript:alert(1)","status":"success"}`,
	}}, Options{})

	res := fetch(t, reg, "joke", nil)
	if strings.Contains(string(res.HTML), "<script>") {
		t.Errorf("joke html not escaped: %s", res.HTML)
	}

	res = fetch(t, reg, "dog", nil)
	if strings.Contains(string(res.HTML), "javascript:") {
		t.Errorf("unsafe url not filtered: %s", res.HTML)
	}
}

func TestUserPanel(t *testing.T) {
	reg := newTestRegistry(t, &fakeGetter{routes: map[string]string{
		"http://up/gh/users/octocat": `{"login":"octocat","avatar_url":"https://avatars.example/1","html_url":"https://github.com/octocat","public_repos":8,"followers":10,"following":1}`,
	}}, Options{})

	res := fetch(t, reg, "user", Params{"username": "octocat"})
	if !res.OK {
		t.Fatalf("user failed: %v", res.Err)
	}
	if !strings.Contains(string(res.HTML), `src="https://avatars.example/1"`) {
		t.Errorf("missing avatar: %s", res.HTML)
	}
	if !strings.HasPrefix(res.Text, "octocat (@octocat)") {
		t.Errorf("unexpected text: %q", res.Text)
	}
}

func TestNeedsInput(t *testing.T) {
	reg := newTestRegistry(t, &fakeGetter{}, Options{})
	want := map[string]bool{"dog": false, "dogs": false, "currency": false, "weather": true, "user": true}
	for id, needs := range want {
		p, _ := reg.Get(id)
		if p.NeedsInput() != needs {
			t.Errorf("%s NeedsInput = %v, want %v", id, p.NeedsInput(), needs)
		}
	}
}

func TestDescriptionHighlighted(t *testing.T) {
	reg := newTestRegistry(t, &fakeGetter{}, Options{})
	p, _ := reg.Get("weather")
	html := string(p.DescriptionHTML)
	if !strings.Contains(html, `<a href="https://open-meteo.com/">Open-Meteo</a>`) {
		t.Errorf("link not rendered: %s", html)
	}
	if !strings.Contains(html, "<pre") {
		t.Errorf("code block not rendered: %s", html)
	}
}
