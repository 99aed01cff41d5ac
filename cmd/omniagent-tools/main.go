// Command omniagent-tools runs the MCP stdio server exposing the domain
// tools. The agent spawns it as a subprocess; stdout carries the MCP
// protocol, logs go to stderr.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/effective-security/xlog"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/server"
	"github.com/omniagent-io/omniagent/services"
	"github.com/omniagent-io/omniagent/store"
	"github.com/omniagent-io/omniagent/toolsrv"
	"github.com/redis/go-redis/v9"
)

const version = "1.0.0"

var logger = xlog.NewPackageLogger("github.com/omniagent-io/omniagent", "omniagent-tools")

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "omniagent-tools: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("omniagent-tools", flag.ContinueOnError)
	servicesURL := fs.String("services", "http://localhost:8000", "base URL of the mock services")
	redisAddr := fs.String("redis", "", "redis address for the session context store, empty for in-memory")
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	xlog.SetFormatter(xlog.NewStringFormatter(os.Stderr))
	if *debug {
		xlog.SetGlobalLogLevel(xlog.DEBUG)
	} else {
		xlog.SetGlobalLogLevel(xlog.INFO)
	}

	sessionID := os.Getenv("OMNIAGENT_SESSION_ID")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	ctxStore := store.NewMemoryStore()
	if *redisAddr != "" {
		ctxStore = store.NewRedisStore(redis.NewClient(&redis.Options{
			Addr: *redisAddr,
		}), "omniagent")
	}

	ts := toolsrv.New(services.NewClient(*servicesURL), ctxStore, sessionID)
	srv, err := toolsrv.NewMCPServer(ts, version)
	if err != nil {
		return err
	}

	logger.KV(xlog.INFO,
		"status", "serving_stdio",
		"session_id", sessionID,
		"services_url", *servicesURL,
	)
	return server.ServeStdio(srv)
}
