package agent_test

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/omniagent-io/omniagent/agent"
	"github.com/omniagent-io/omniagent/mocks/mocktools"
	"github.com/omniagent-io/omniagent/pkg/llms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_Session_Quit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tool := mocktools.NewMockITool(ctrl)
	tool.EXPECT().Name().Return("get_weather").AnyTimes()
	tool.EXPECT().Description().Return("weather").AnyTimes()
	tool.EXPECT().Parameters().Return(map[string]any{"type": "object"}).AnyTimes()

	mockLLM := newMockLLM(ctrl)

	ag := agent.New(mockLLM, agent.SystemPrompt(fixedClock())).
		WithTools(tool)

	for _, token := range []string{"quit", "exit", "q", "QUIT"} {
		var out strings.Builder
		sess := agent.NewSession(ag, strings.NewReader(token+"\n"), &out)
		err := sess.Run(context.Background())
		require.NoError(t, err)

		assert.Contains(t, out.String(), "OmniAgent - Multi-Domain AI Assistant")
		assert.Contains(t, out.String(), "Available tools: get_weather")
		assert.Contains(t, out.String(), "You: ")
		assert.Contains(t, out.String(), "Goodbye!")
		assert.Empty(t, sess.Transcript())
	}
}

func Test_Session_EOF(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := newMockLLM(ctrl)
	ag := agent.New(mockLLM, agent.SystemPrompt(fixedClock()))

	var out strings.Builder
	sess := agent.NewSession(ag, strings.NewReader(""), &out)
	err := sess.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Goodbye!")
}

func Test_Session_Turns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := newMockLLM(ctrl)
	mockLLM.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, messages []llms.Message, options ...llms.CallOption) (*llms.ContentResponse, error) {
			return textResponse("Hello there!"), nil
		}).Times(2)

	ag := agent.New(mockLLM, agent.SystemPrompt(fixedClock()))

	// Blank lines are skipped, two real turns run.
	in := strings.NewReader("hi\n\nhow are you\nquit\n")
	var out strings.Builder
	sess := agent.NewSession(ag, in, &out)
	err := sess.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "\nAgent: Hello there!\n")
	assert.Contains(t, out.String(), "Goodbye!")

	transcript := sess.Transcript()
	require.Len(t, transcript, 4)
	assert.Equal(t, llms.RoleHuman, transcript[0].Role)
	assert.Equal(t, llms.RoleAI, transcript[1].Role)
	assert.Equal(t, llms.RoleHuman, transcript[2].Role)
	assert.Equal(t, llms.RoleAI, transcript[3].Role)
	assert.Equal(t, "hi", transcript[0].Parts[0].(llms.TextContent).Text)
	assert.Equal(t, "how are you", transcript[2].Parts[0].(llms.TextContent).Text)
}

func Test_Session_TurnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := newMockLLM(ctrl)
	gomock.InOrder(
		mockLLM.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any()).Return(
			nil, errors.New("connection refused")),
		mockLLM.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any()).Return(
			textResponse("Recovered."), nil),
	)

	ag := agent.New(mockLLM, agent.SystemPrompt(fixedClock()))

	in := strings.NewReader("first\nsecond\nquit\n")
	var out strings.Builder
	sess := agent.NewSession(ag, in, &out)
	err := sess.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "The request could not be completed:")
	assert.Contains(t, out.String(), "\nAgent: Recovered.\n")

	// The failed turn keeps its user message so the model sees it later.
	transcript := sess.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, llms.RoleHuman, transcript[0].Role)
	assert.Equal(t, "first", transcript[0].Parts[0].(llms.TextContent).Text)
	assert.Equal(t, llms.RoleHuman, transcript[1].Role)
	assert.Equal(t, llms.RoleAI, transcript[2].Role)
}
