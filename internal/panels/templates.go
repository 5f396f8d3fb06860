package panels

const dogHTML = `<img class="panel-image" src="{{.}}" alt="Random dog">`

const dogText = `{{.}}
`

const dogsHTML = `<div class="gallery">{{range .}}<img class="panel-image" src="{{.}}" alt="Random dog">{{end}}</div>`

const dogsText = `{{range .}}{{.}}
{{end}}`

const catHTML = `<img class="panel-image" src="{{.URL}}" alt="Random cat">`

const catText = `{{.URL}}
`

const currencyHTML = `<table class="rates">
<caption>1 {{.Base}} equals</caption>
<tbody>{{range .Rates}}
<tr><th scope="row">{{.Code}}</th><td>{{printf "%.4f" .Value}}</td></tr>{{end}}
</tbody>
</table>{{with .UpdatedAt}}
<p class="muted">Updated {{.}}</p>{{end}}`

const currencyText = `1 {{.Base}} equals
{{range .Rates}}  {{.Code}}  {{printf "%.4f" .Value}}
{{end}}`

const weatherHTML = `<div class="weather">
<h3>{{.Place.Label}}</h3>
<p class="weather-emoji">{{.Condition.Emoji}}</p>
<p class="weather-description">{{.Condition.Description}}</p>
<p>{{printf "%.1f" .Current.Temperature}} °C, wind {{printf "%.1f" .Current.WindSpeed}} km/h</p>
</div>`

const weatherText = `{{.Place.Label}}: {{.Condition.Emoji}} {{.Condition.Description}}, {{printf "%.1f" .Current.Temperature}} °C, wind {{printf "%.1f" .Current.WindSpeed}} km/h
`

const jokeHTML = `<p class="joke-setup">{{.Setup}}</p>
<p class="joke-punchline">{{.Punchline}}</p>`

const jokeText = `{{.Setup}}
{{.Punchline}}
`

const moviesHTML = `<ol class="movies">{{range .}}
<li>{{if .PosterURL}}<img class="poster" src="{{.PosterURL}}" alt="{{.Title}} poster">{{end}}<strong>{{.Title}}</strong>{{with .Year}} ({{.}}){{end}} <span class="rating">★ {{printf "%.1f" .VoteAverage}}</span></li>{{end}}
</ol>`

const moviesText = `{{range .}}- {{.Title}}{{with .Year}} ({{.}}){{end}} ★ {{printf "%.1f" .VoteAverage}}
{{end}}`

const userHTML = `<div class="profile">
<img class="avatar" src="{{.AvatarURL}}" alt="{{.Login}} avatar">
<h3><a href="{{.ProfileURL}}" rel="noopener" target="_blank">{{.DisplayName}}</a></h3>
<p class="muted">@{{.Login}}{{with .Location}} · {{.}}{{end}}</p>{{with .Bio}}
<p>{{.}}</p>{{end}}
<p>{{.PublicRepos}} public repos · {{.Followers}} followers · {{.Following}} following</p>
</div>`

const userText = `{{.DisplayName}} (@{{.Login}}){{with .Location}}, {{.}}{{end}}
{{.PublicRepos}} public repos, {{.Followers}} followers, {{.Following}} following
{{.ProfileURL}}
`
