package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/disasterwatch/alert-aggregation-service/internal/domain"
	"github.com/disasterwatch/alert-aggregation-service/internal/observability"
	"golang.org/x/time/rate"
)

// Client fetches current weather and forecasts from the OpenWeather API.
// Requests are rate limited to stay inside the free-tier budget.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an OpenWeather client with the given request timeout and
// per-minute request budget.
func NewClient(apiKey string, timeout time.Duration, requestsPerMinute int, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.openweathermap.org/data/2.5",
		limiter: rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), requestsPerMinute),
		metrics: metrics,
		logger:  logger,
	}
}

// CurrentConditions fetches and normalizes the current weather for one
// location.
func (c *Client) CurrentConditions(ctx context.Context, name string, coord domain.Coordinates) (domain.WeatherConditions, error) {
	var resp currentResponse
	if err := c.get(ctx, "weather", coord, &resp); err != nil {
		return domain.WeatherConditions{}, err
	}
	return normalizeCurrent(resp, name, coord)
}

// Forecast fetches the 3-hour forecast series for one location.
func (c *Client) Forecast(ctx context.Context, coord domain.Coordinates) ([]domain.ForecastBucket, error) {
	var resp forecastResponse
	if err := c.get(ctx, "forecast", coord, &resp); err != nil {
		return nil, err
	}
	return normalizeForecast(resp), nil
}

func (c *Client) get(ctx context.Context, endpoint string, coord domain.Coordinates, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{
		"lat":   {fmt.Sprintf("%.4f", coord.Lat)},
		"lon":   {fmt.Sprintf("%.4f", coord.Lon)},
		"appid": {c.apiKey},
		"units": {"metric"},
	}
	fullURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.WeatherAPIDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.WeatherAPIRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.WeatherAPIRequests.WithLabelValues(endpoint, "error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("openweather %s: status %d: %s", endpoint, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.WeatherAPIRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	c.metrics.WeatherAPIRequests.WithLabelValues(endpoint, "success").Inc()
	return nil
}

// OpenWeather API response types. Wind speeds arrive in m/s, rain in mm over
// the stated window.

type currentResponse struct {
	Main *struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
		Gust  float64 `json:"gust"`
	} `json:"wind"`
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
	Snow struct {
		OneHour float64 `json:"1h"`
	} `json:"snow"`
	Visibility *float64 `json:"visibility"`
	Clouds     struct {
		All float64 `json:"all"`
	} `json:"clouds"`
}

type forecastResponse struct {
	List []struct {
		Dt    int64  `json:"dt"`
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
			Pressure float64 `json:"pressure"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Rain struct {
			ThreeHour float64 `json:"3h"`
		} `json:"rain"`
		Clouds struct {
			All float64 `json:"all"`
		} `json:"clouds"`
	} `json:"list"`
}

// normalizeCurrent converts a provider payload into canonical conditions.
// A payload without main or weather[0] is malformed and rejected so the
// caller can skip the location without aborting the pass.
func normalizeCurrent(resp currentResponse, name string, coord domain.Coordinates) (domain.WeatherConditions, error) {
	if resp.Main == nil {
		return domain.WeatherConditions{}, fmt.Errorf("malformed response for %s: missing main", name)
	}
	if len(resp.Weather) == 0 {
		return domain.WeatherConditions{}, fmt.Errorf("malformed response for %s: missing weather", name)
	}

	visibility := 10000.0 // absent visibility means clear air
	if resp.Visibility != nil {
		visibility = *resp.Visibility
	}

	return domain.WeatherConditions{
		LocationKey:   domain.LocationKey(name),
		LocationName:  name,
		Coordinates:   coord,
		TemperatureC:  resp.Main.Temp,
		HumidityPct:   resp.Main.Humidity,
		WindSpeedKmh:  resp.Wind.Speed * 3.6,
		RainMmPerHour: resp.Rain.OneHour,
		PressureHpa:   resp.Main.Pressure,
		VisibilityM:   visibility,
		CloudPct:      resp.Clouds.All,
		Description:   resp.Weather[0].Description,
	}, nil
}

func normalizeForecast(resp forecastResponse) []domain.ForecastBucket {
	buckets := make([]domain.ForecastBucket, 0, len(resp.List))
	for _, item := range resp.List {
		bucket := domain.ForecastBucket{
			Time:         time.Unix(item.Dt, 0).UTC(),
			TimeText:     item.DtTxt,
			TemperatureC: item.Main.Temp,
			HumidityPct:  item.Main.Humidity,
			PressureHpa:  item.Main.Pressure,
			WindSpeedKmh: item.Wind.Speed * 3.6,
			Rain3hMm:     item.Rain.ThreeHour,
			CloudPct:     item.Clouds.All,
		}
		if len(item.Weather) > 0 {
			bucket.Main = item.Weather[0].Main
			bucket.Description = item.Weather[0].Description
		}
		buckets = append(buckets, bucket)
	}
	return buckets
}
