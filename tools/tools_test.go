package tools_test

import (
	"testing"

	"github.com/omniagent-io/omniagent/mocks/mocktools"
	"github.com/omniagent-io/omniagent/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_Definitions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	params := map[string]any{"type": "object"}

	tool := mocktools.NewMockITool(ctrl)
	tool.EXPECT().Name().Return("get_weather").AnyTimes()
	tool.EXPECT().Description().Return("Get current weather.").AnyTimes()
	tool.EXPECT().Parameters().Return(params).AnyTimes()

	defs := tools.Definitions(tool)
	require.Len(t, defs, 1)
	assert.Equal(t, "function", defs[0].Type)
	assert.Equal(t, "get_weather", defs[0].Function.Name)
	assert.Equal(t, "Get current weather.", defs[0].Function.Description)
	assert.Equal(t, params, defs[0].Function.Parameters)
}

func Test_GetDescriptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	weather := mocktools.NewMockITool(ctrl)
	weather.EXPECT().Name().Return("get_weather").AnyTimes()
	weather.EXPECT().Description().Return("Get current weather.").AnyTimes()

	currency := mocktools.NewMockITool(ctrl)
	currency.EXPECT().Name().Return("convert_currency").AnyTimes()
	currency.EXPECT().Description().Return("Convert between currencies.").AnyTimes()

	exp := "```json\n{\n  \"Tools\": [\n    {\n      \"Name\": \"get_weather\",\n      \"Description\": \"Get current weather.\"\n    },\n    {\n      \"Name\": \"convert_currency\",\n      \"Description\": \"Convert between currencies.\"\n    }\n  ]\n}\n```"
	assert.Equal(t, exp, tools.GetDescriptions(weather, currency))
}
