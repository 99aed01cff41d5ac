package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/effective-security/xlog"
	"github.com/omniagent-io/omniagent/pkg/llms"
)

// Session is the interactive conversation loop: it reads one line per
// turn, runs the agent, and owns the conversation transcript. The
// transcript is append-only and grows for the lifetime of the process.
type Session struct {
	agent      *Agent
	in         io.Reader
	out        io.Writer
	transcript []llms.Message
}

// NewSession creates an interactive session over the given streams.
func NewSession(a *Agent, in io.Reader, out io.Writer) *Session {
	return &Session{
		agent: a,
		in:    in,
		out:   out,
	}
}

// Transcript returns the conversation transcript accumulated so far.
func (s *Session) Transcript() []llms.Message {
	return s.transcript
}

func isQuit(input string) bool {
	switch strings.ToLower(input) {
	case "quit", "exit", "q":
		return true
	}
	return false
}

// Run drives the conversation until the user quits or input ends.
// A reasoning failure is reported as plain text and the turn's user
// message is kept, so the user may retry.
func (s *Session) Run(ctx context.Context) error {
	toolNames := make([]string, 0, len(s.agent.GetTools()))
	for _, tool := range s.agent.GetTools() {
		toolNames = append(toolNames, tool.Name())
	}

	fmt.Fprintln(s.out, strings.Repeat("=", 60))
	fmt.Fprintln(s.out, "  OmniAgent - Multi-Domain AI Assistant")
	fmt.Fprintf(s.out, "  Available tools: %s\n", strings.Join(toolNames, ", "))
	fmt.Fprintln(s.out, strings.Repeat("=", 60))
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Type your request (or 'quit' to exit):")
	fmt.Fprintln(s.out)

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out, "\nGoodbye!")
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if isQuit(input) {
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		}

		resp, err := s.agent.Call(ctx, &CallInput{
			Input:    input,
			Messages: s.transcript,
		})
		if err != nil {
			// The turn failed but the conversation continues.
			s.transcript = append(s.transcript, llms.MessageFromTextParts(llms.RoleHuman, input))
			logger.ContextKV(ctx, xlog.ERROR,
				"status", "turn_failed",
				"err", err.Error())
			fmt.Fprintf(s.out, "\nAgent: The request could not be completed: %s\n\n", err.Error())
			continue
		}

		s.transcript = append(s.transcript, s.agent.LastRunMessages()...)
		fmt.Fprintf(s.out, "\nAgent: %s\n\n", finalAnswer(resp))
	}
}

func finalAnswer(resp *llms.ContentResponse) string {
	if resp == nil || len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Content
}
