package agent

import (
	"context"
	"fmt"
	"io"

	"github.com/effective-security/xlog"
	"github.com/omniagent-io/omniagent/pkg/llms"
	"github.com/omniagent-io/omniagent/pkg/llmutils"
	"github.com/omniagent-io/omniagent/tools"
)

// Callback receives turn and tool lifecycle notifications.
type Callback interface {
	tools.Callback
	OnAgentStart(ctx context.Context, agent *Agent, input string)
	OnAgentEnd(ctx context.Context, agent *Agent, input string, resp *llms.ContentResponse)
	OnAgentError(ctx context.Context, agent *Agent, input string, err error)
	OnToolNotFound(ctx context.Context, agent *Agent, toolName string)
}

// NoopCallback does nothing.
type NoopCallback struct{}

func NewNoopCallback() *NoopCallback {
	return &NoopCallback{}
}

var _ Callback = (*NoopCallback)(nil)

func (l *NoopCallback) OnAgentStart(ctx context.Context, agent *Agent, input string) {}
func (l *NoopCallback) OnAgentEnd(ctx context.Context, agent *Agent, input string, resp *llms.ContentResponse) {
}
func (l *NoopCallback) OnAgentError(ctx context.Context, agent *Agent, input string, err error) {}
func (l *NoopCallback) OnToolNotFound(ctx context.Context, agent *Agent, toolName string)       {}
func (l *NoopCallback) OnToolStart(ctx context.Context, tool tools.ITool, input string)         {}
func (l *NoopCallback) OnToolEnd(ctx context.Context, tool tools.ITool, input string, output string) {
}
func (l *NoopCallback) OnToolError(ctx context.Context, tool tools.ITool, input string, err error) {}

// PrinterCallback prints tool activity to the Writer, the way the
// interactive CLI displays it. Tool results are truncated for display
// only; the transcript keeps them whole.
type PrinterCallback struct {
	Out io.Writer
}

func NewPrinterCallback(out io.Writer) *PrinterCallback {
	return &PrinterCallback{Out: out}
}

var _ Callback = (*PrinterCallback)(nil)

func (l *PrinterCallback) OnAgentStart(ctx context.Context, agent *Agent, input string) {}
func (l *PrinterCallback) OnAgentEnd(ctx context.Context, agent *Agent, input string, resp *llms.ContentResponse) {
}

func (l *PrinterCallback) OnAgentError(ctx context.Context, agent *Agent, input string, err error) {
	fmt.Fprintf(l.Out, "Agent Error: %s\n", err.Error())
}

func (l *PrinterCallback) OnToolNotFound(ctx context.Context, agent *Agent, toolName string) {
	fmt.Fprintf(l.Out, "\n  [Tool Not Found] %s\n", toolName)
}

func (l *PrinterCallback) OnToolStart(ctx context.Context, tool tools.ITool, input string) {
	fmt.Fprintf(l.Out, "\n  [Tool Call] %s(%s)\n", tool.Name(), input)
}

func (l *PrinterCallback) OnToolEnd(ctx context.Context, tool tools.ITool, input string, output string) {
	fmt.Fprintf(l.Out, "  [Result] %s\n", llmutils.Truncate(output, 200))
}

func (l *PrinterCallback) OnToolError(ctx context.Context, tool tools.ITool, input string, err error) {
	fmt.Fprintf(l.Out, "  [Error] %s\n", err.Error())
}

// PackageLoggerCallback logs the lifecycle events to the given logger.
type PackageLoggerCallback struct {
	logger *xlog.PackageLogger
}

func NewPackageLoggerCallback(logger *xlog.PackageLogger) *PackageLoggerCallback {
	return &PackageLoggerCallback{logger: logger}
}

var _ Callback = (*PackageLoggerCallback)(nil)

func (l *PackageLoggerCallback) OnAgentStart(ctx context.Context, agent *Agent, input string) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "agent_start",
		"agent", agent.Name(),
		"input", input,
	)
}

func (l *PackageLoggerCallback) OnAgentEnd(ctx context.Context, agent *Agent, input string, resp *llms.ContentResponse) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "agent_end",
		"agent", agent.Name())
	for _, choice := range resp.Choices {
		if choice.Content != "" {
			l.logger.ContextKV(ctx, xlog.DEBUG, "result", choice.Content)
		}
	}
}

func (l *PackageLoggerCallback) OnAgentError(ctx context.Context, agent *Agent, input string, err error) {
	l.logger.ContextKV(ctx, xlog.ERROR,
		"event", "agent_error",
		"agent", agent.Name(),
		"err", err.Error(),
	)
}

func (l *PackageLoggerCallback) OnToolNotFound(ctx context.Context, agent *Agent, toolName string) {
	l.logger.ContextKV(ctx, xlog.WARNING,
		"event", "tool_not_found",
		"agent", agent.Name(),
		"tool", toolName,
	)
}

func (l *PackageLoggerCallback) OnToolStart(ctx context.Context, tool tools.ITool, input string) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "tool_start",
		"tool", tool.Name(),
		"input", input,
	)
}

func (l *PackageLoggerCallback) OnToolEnd(ctx context.Context, tool tools.ITool, input string, output string) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "tool_end",
		"tool", tool.Name(),
		"output", llmutils.Truncate(output, 200),
	)
}

func (l *PackageLoggerCallback) OnToolError(ctx context.Context, tool tools.ITool, input string, err error) {
	l.logger.ContextKV(ctx, xlog.ERROR,
		"event", "tool_error",
		"tool", tool.Name(),
		"err", err.Error(),
	)
}
