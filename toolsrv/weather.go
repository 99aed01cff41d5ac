package toolsrv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/omniagent-io/omniagent/pkg/llmutils"
	"github.com/omniagent-io/omniagent/services"
	"github.com/omniagent-io/omniagent/tools"
)

const WeatherToolName = "get_weather"

// WeatherRequest is the input of the get_weather tool.
type WeatherRequest struct {
	Location string `json:"location" yaml:"location" validate:"required" jsonschema:"title=location,description=The city or location name (e.g. London or Mumbai)."`
}

type weatherTool struct {
	ts *Toolset
}

var _ tools.Tool[WeatherRequest, services.WeatherResponse] = (*weatherTool)(nil)

func (t *weatherTool) Name() string {
	return WeatherToolName
}

func (t *weatherTool) Description() string {
	return "Get the current weather for a city or location. " +
		"Returns a summary of current conditions including temperature, " +
		"humidity, wind speed, and sky condition."
}

func (t *weatherTool) Parameters() any {
	return parameters(WeatherRequest{})
}

func (t *weatherTool) Run(ctx context.Context, req *WeatherRequest) (*services.WeatherResponse, error) {
	if err := t.ts.validate.Struct(req); err != nil {
		return nil, errors.WithMessage(err, "invalid request")
	}
	return t.ts.client.GetWeather(ctx, req.Location)
}

func (t *weatherTool) Call(ctx context.Context, input string) (string, error) {
	var req WeatherRequest
	if err := json.Unmarshal(llmutils.CleanJSON([]byte(input)), &req); err != nil {
		return "", errors.WithMessage(err, "failed to unmarshal input")
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Weather in %s:\n"+
		"  Temperature: %v°C\n"+
		"  Condition: %s\n"+
		"  Humidity: %d%%\n"+
		"  Wind: %v km/h",
		res.Location, res.TemperatureC, res.Condition, res.Humidity, res.WindKph), nil
}
