package llmutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/omniagent-io/omniagent/pkg/llms"
)

// CleanJSON returns JSON by trimming prefixes and postfixes.
// Models occasionally wrap tool arguments like `Here you go: {json}`.
func CleanJSON(bs []byte) []byte {
	trimmedPrefix := trimPrefixBeforeJSON(bs)
	trimmedJSON := trimPostfixAfterJSON(trimmedPrefix)
	return trimmedJSON
}

// Removes any prefixes before the JSON (like "Sure, here you go:")
func trimPrefixBeforeJSON(bs []byte) []byte {
	startObject := bytes.IndexByte(bs, '{')
	startArray := bytes.IndexByte(bs, '[')

	var start int
	if startObject == -1 && startArray == -1 {
		return bs
	} else if startObject == -1 {
		start = startArray
	} else if startArray == -1 {
		start = startObject
	} else {
		start = min(startObject, startArray)
	}

	return bs[start:]
}

// Removes any postfixes after the JSON
func trimPostfixAfterJSON(bs []byte) []byte {
	endObject := bytes.LastIndexByte(bs, '}')
	endArray := bytes.LastIndexByte(bs, ']')

	var end int
	if endObject == -1 && endArray == -1 {
		return bs
	} else if endObject == -1 {
		end = endArray
	} else if endArray == -1 {
		end = endObject
	} else {
		end = max(endObject, endArray)
	}

	return bs[:end+1]
}

// ToJSON marshals the value without indentation.
func ToJSON(val any) string {
	bs, _ := json.Marshal(val)
	return string(bs)
}

// ToJSONIndent marshals the value with indentation.
func ToJSONIndent(val any) string {
	bs, _ := json.MarshalIndent(val, "", "  ")
	return string(bs)
}

// BackticksJSON wraps a JSON string in a fenced code block.
func BackticksJSON(js string) string {
	return fmt.Sprintf("```json\n%s\n```", js)
}

// Truncate shortens a string to at most max runes, appending an ellipsis.
// Used for log output; transcript content is never truncated.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// CountMessagesContentSize returns the total content size in bytes.
func CountMessagesContentSize(msgs []llms.Message) uint64 {
	var size uint64
	for _, m := range msgs {
		size += uint64(len(m.GetContent()))
	}
	return size
}

// CountResponseContentSize returns the total response content size in bytes.
func CountResponseContentSize(resp *llms.ContentResponse) uint64 {
	if resp == nil {
		return 0
	}
	var size uint64
	for _, c := range resp.Choices {
		size += uint64(len(c.Content))
		for _, tc := range c.ToolCalls {
			if tc.FunctionCall != nil {
				size += uint64(len(tc.FunctionCall.Arguments))
			}
		}
	}
	return size
}

// CountTokens extracts the token usage from the response generation info.
func CountTokens(resp *llms.ContentResponse) (in, out, total int64) {
	if resp == nil {
		return 0, 0, 0
	}
	for _, c := range resp.Choices {
		if c.GenerationInfo == nil {
			continue
		}
		in += asInt64(c.GenerationInfo["PromptTokens"])
		out += asInt64(c.GenerationInfo["CompletionTokens"])
		total += asInt64(c.GenerationInfo["TotalTokens"])
	}
	return
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	}
	return 0
}

// FindLastUserQuestion returns the text of the last human message.
func FindLastUserQuestion(messages []llms.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == llms.RoleHuman {
			return strings.TrimRight(messages[i].GetContent(), "\n")
		}
	}
	return ""
}

// PrintMessages writes the messages to the writer, one per line.
func PrintMessages(w io.Writer, msgs []llms.Message) {
	for _, m := range msgs {
		fmt.Fprintf(w, "%s: %s", m.Role, m.GetContent())
	}
}
