// Command quoted serves the quote-lookup service: a single GET /quote
// endpoint behind static Bearer-token auth. The token is read from the
// QUOTES_API_TOKEN environment variable.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/EfeSenerr/demo-ghcp-cli/logging"
	"github.com/EfeSenerr/demo-ghcp-cli/quoteserver"
)

func main() {
	addr := flag.String("addr", ":8085", "listen address")
	flag.Parse()

	_ = godotenv.Load()

	token := os.Getenv("QUOTES_API_TOKEN")
	if token == "" {
		fmt.Fprintln(os.Stderr, "error: QUOTES_API_TOKEN environment variable is required")
		os.Exit(1)
	}

	logger := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	srv := quoteserver.New(token, func(o *quoteserver.Options) {
		o.Logger = logger
	})

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("quoted.listening", "addr", *addr)
	if err := httpServer.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
