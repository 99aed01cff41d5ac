// Command omniagent-services runs the mock HTTP services backing the
// domain tools: weather, currency rates, member profiles, flights and
// movies.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/effective-security/xlog"
	"github.com/omniagent-io/omniagent/services"
)

var logger = xlog.NewPackageLogger("github.com/omniagent-io/omniagent", "omniagent-services")

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "omniagent-services: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("omniagent-services", flag.ContinueOnError)
	addr := fs.String("addr", ":8000", "listen address")
	seed := fs.Uint64("seed", 0, "seed for generated data, 0 for random")
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

	srv := &http.Server{
		Addr:              *addr,
		Handler:           services.NewServer(*seed).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.KV(xlog.INFO, "status", "listening", "addr", *addr)
	return srv.ListenAndServe()
}
