package apis

// WeatherCondition is the human-readable form of a WMO weather code.
type WeatherCondition struct {
	Code        int
	Description string
	Emoji       string
}

var weatherCodes = map[int]WeatherCondition{
	0:  {Description: "Clear sky", Emoji: "☀️"},
	1:  {Description: "Mainly clear", Emoji: "🌤️"},
	2:  {Description: "Partly cloudy", Emoji: "⛅"},
	3:  {Description: "Overcast", Emoji: "☁️"},
	45: {Description: "Fog", Emoji: "🌫️"},
	48: {Description: "Depositing rime fog", Emoji: "🌫️"},
	51: {Description: "Light drizzle", Emoji: "🌦️"},
	53: {Description: "Moderate drizzle", Emoji: "🌦️"},
	55: {Description: "Dense drizzle", Emoji: "🌦️"},
	56: {Description: "Light freezing drizzle", Emoji: "🌧️"},
	57: {Description: "Dense freezing drizzle", Emoji: "🌧️"},
	61: {Description: "Slight rain", Emoji: "🌧️"},
	63: {Description: "Moderate rain", Emoji: "🌧️"},
	65: {Description: "Heavy rain", Emoji: "🌧️"},
	66: {Description: "Light freezing rain", Emoji: "🌧️"},
	67: {Description: "Heavy freezing rain", Emoji: "🌧️"},
	71: {Description: "Slight snow fall", Emoji: "🌨️"},
	73: {Description: "Moderate snow fall", Emoji: "🌨️"},
	75: {Description: "Heavy snow fall", Emoji: "🌨️"},
	77: {Description: "Snow grains", Emoji: "🌨️"},
	80: {Description: "Slight rain showers", Emoji: "🌦️"},
	81: {Description: "Moderate rain showers", Emoji: "🌦️"},
	82: {Description: "Violent rain showers", Emoji: "🌦️"},
	85: {Description: "Slight snow showers", Emoji: "🌨️"},
	86: {Description: "Heavy snow showers", Emoji: "🌨️"},
	95: {Description: "Thunderstorm", Emoji: "⛈️"},
	96: {Description: "Thunderstorm with slight hail", Emoji: "⛈️"},
	99: {Description: "Thunderstorm with heavy hail", Emoji: "⛈️"},
}

// unknownCondition is returned for codes missing from the table.
var unknownCondition = WeatherCondition{Description: "Unknown conditions", Emoji: "❓"}

// DescribeWeatherCode maps a WMO weather code to a description and emoji.
func DescribeWeatherCode(code int) WeatherCondition {
	c, ok := weatherCodes[code]
	if !ok {
		c = unknownCondition
	}
	c.Code = code
	return c
}
