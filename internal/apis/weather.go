package apis

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Place is a geocoded location.
type Place struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// Label is the display name of the place, e.g. "Paris, France".
func (p Place) Label() string {
	if p.Country == "" {
		return p.Name
	}
	return p.Name + ", " + p.Country
}

// CurrentWeather is the current_weather block of a forecast.
type CurrentWeather struct {
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"windspeed"`
	WindDirection float64 `json:"winddirection"`
	WeatherCode   int     `json:"weathercode"`
	IsDay         int     `json:"is_day"`
	Time          string  `json:"time"`
}

// WeatherReport combines a place with its current conditions.
type WeatherReport struct {
	Place     Place
	Current   CurrentWeather
	Condition WeatherCondition
}

type geocodeResponse struct {
	Results []Place `json:"results"`
}

type forecastResponse struct {
	Latitude       float64         `json:"latitude"`
	Longitude      float64         `json:"longitude"`
	CurrentWeather *CurrentWeather `json:"current_weather"`
}

// Geocode resolves a city name to its best matching place.
func (c *Client) Geocode(ctx context.Context, city string) (*Place, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, &InputError{Message: "Please enter a city name."}
	}

	q := url.Values{}
	q.Set("name", city)
	q.Set("count", "1")
	q.Set("language", "en")
	q.Set("format", "json")

	var resp geocodeResponse
	if err := c.http.GetJSON(ctx, c.url(c.endpoints.Geocoding, "/search?"+q.Encode()), &resp); err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", city, err)
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("geocoding %q: %w", city, ErrNotFound)
	}
	return &resp.Results[0], nil
}

// Forecast returns the current weather at the given coordinates.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (*CurrentWeather, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	q.Set("current_weather", "true")

	var resp forecastResponse
	if err := c.http.GetJSON(ctx, c.url(c.endpoints.Forecast, "/forecast?"+q.Encode()), &resp); err != nil {
		return nil, fmt.Errorf("fetching forecast: %w", err)
	}
	if resp.CurrentWeather == nil {
		return nil, fmt.Errorf("fetching forecast: %w: no current_weather", ErrMalformed)
	}
	return resp.CurrentWeather, nil
}

// Weather geocodes city and then fetches its current weather.
func (c *Client) Weather(ctx context.Context, city string) (*WeatherReport, error) {
	place, err := c.Geocode(ctx, city)
	if err != nil {
		return nil, err
	}
	current, err := c.Forecast(ctx, place.Latitude, place.Longitude)
	if err != nil {
		return nil, err
	}
	return &WeatherReport{
		Place:     *place,
		Current:   *current,
		Condition: DescribeWeatherCode(current.WeatherCode),
	}, nil
}
