package panels

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

type markdown struct {
	md goldmark.Markdown
}

func newMarkdown() *markdown {
	return &markdown{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
		),
	}
}

// render converts panel descriptions to HTML. Raw HTML in the source is
// dropped since goldmark runs without html.WithUnsafe.
func (m *markdown) render(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

const dogDescription = `One random photo from the [Dog CEO](https://dog.ceo/dog-api/) API.`

const dogsDescription = "Several random dog photos at once, up to 50.\n\n" +
	"```sh\ncurl 'http://localhost:8080/panels/dogs?count=5'\n```\n"

const catDescription = `One random photo from [The Cat API](https://thecatapi.com/).`

const currencyDescription = "Latest exchange rates from the **open.er-api.com** feed. " +
	"Leave *Currencies* empty to list every rate.\n\n" +
	"```sh\ncurl 'http://localhost:8080/panels/currency?base=EUR&symbols=USD,GBP'\n```\n"

const weatherDescription = "Current conditions from [Open-Meteo](https://open-meteo.com/). " +
	"The city is geocoded first, then its coordinates are used for the forecast.\n\n" +
	"```sh\ncurl 'http://localhost:8080/panels/weather?city=Lisbon'\n```\n"

const jokeDescription = `A random two-line joke.`

const moviesDescription = "This week's trending movies from [TMDB](https://www.themoviedb.org/). " +
	"Requires `tmdb_api_key` in the configuration."

const userDescription = "Public profile lookup on GitHub.\n\n" +
	"```sh\ncurl 'http://localhost:8080/panels/user?username=octocat'\n```\n"
