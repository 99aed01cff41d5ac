package toolsrv

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/omniagent-io/omniagent/tools"
)

const SessionContextToolName = "get_session_context"

// SessionContextRequest is the input of the get_session_context tool.
// The tool takes no arguments.
type SessionContextRequest struct{}

type sessionContextTool struct {
	ts *Toolset
}

var _ tools.ITool = (*sessionContextTool)(nil)

func (t *sessionContextTool) Name() string {
	return SessionContextToolName
}

func (t *sessionContextTool) Description() string {
	return "Retrieve the current session context (previously looked-up member info, etc.). " +
		"Returns any stored session state from previous tool calls in this session."
}

func (t *sessionContextTool) Parameters() any {
	return parameters(SessionContextRequest{})
}

func (t *sessionContextTool) Call(ctx context.Context, _ string) (string, error) {
	state, err := t.ts.store.All(ctx, t.ts.sessionID)
	if err != nil {
		return "", err
	}
	if len(state) == 0 {
		return "No session context available. Use member_lookup first.", nil
	}

	keys := make([]string, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := []string{"Current Session Context:"}
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("  %s: %s", k, state[k]))
	}
	return strings.Join(lines, "\n"), nil
}
