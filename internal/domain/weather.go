package domain

type WeatherLocation struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

type WeatherCondition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

type CurrentWeather struct {
	TempC     float64          `json:"temp_c"`
	Condition WeatherCondition `json:"condition"`
	Humidity  int              `json:"humidity"`
	WindKPH   float64          `json:"wind_kph"`
}

type Weather struct {
	Location WeatherLocation `json:"location"`
	Current  CurrentWeather  `json:"current"`
}
