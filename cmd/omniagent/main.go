// Command omniagent is the interactive CLI assistant. It spawns the
// tool server as an MCP stdio subprocess, connects the reasoning model
// from the yaml provider config, and runs the conversation loop.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/effective-security/xlog"
	"github.com/google/uuid"
	"github.com/omniagent-io/omniagent/agent"
	"github.com/omniagent-io/omniagent/llmfactory"
	"github.com/omniagent-io/omniagent/mcptools"
	"github.com/omniagent-io/omniagent/pkg/llms"
)

var logger = xlog.NewPackageLogger("github.com/omniagent-io/omniagent", "omniagent")

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "omniagent: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("omniagent", flag.ContinueOnError)
	cfgPath := fs.String("cfg", "llm.yaml", "path to the reasoning provider config")
	model := fs.String("model", "", "provider name to use, empty for the first configured")
	toolsCmd := fs.String("tools-cmd", "omniagent-tools", "tool server command to spawn")
	servicesURL := fs.String("services", "http://localhost:8000", "base URL of the mock services, passed to the tool server")
	redisAddr := fs.String("redis", "", "redis address for the session context store, passed to the tool server")
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	xlog.SetFormatter(xlog.NewStringFormatter(os.Stderr))
	if *debug {
		xlog.SetGlobalLogLevel(xlog.DEBUG)
	} else {
		xlog.SetGlobalLogLevel(xlog.ERROR)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	factory, err := llmfactory.Load(*cfgPath)
	if err != nil {
		return err
	}
	var reasoner llms.Model
	if *model != "" {
		reasoner, err = factory.ModelByName(*model)
	} else {
		reasoner, err = factory.DefaultModel()
	}
	if err != nil {
		return err
	}

	sessionID := uuid.NewString()
	toolArgs := []string{"-services", *servicesURL}
	if *redisAddr != "" {
		toolArgs = append(toolArgs, "-redis", *redisAddr)
	}
	provider, err := mcptools.ConnectStdio(ctx, *toolsCmd,
		[]string{"OMNIAGENT_SESSION_ID=" + sessionID}, toolArgs)
	if err != nil {
		return err
	}
	defer func() {
		if err := provider.Close(); err != nil {
			logger.KV(xlog.WARNING, "status", "close_failed", "err", err.Error())
		}
	}()

	logger.ContextKV(ctx, xlog.DEBUG,
		"status", "connected",
		"session_id", sessionID,
		"tools_count", len(provider.Tools()),
	)

	ag := agent.New(reasoner, agent.SystemPrompt(nil),
		agent.WithCallback(agent.NewPrinterCallback(os.Stdout))).
		WithTools(provider.Tools()...)

	return agent.NewSession(ag, os.Stdin, os.Stdout).Run(ctx)
}
