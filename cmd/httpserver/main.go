package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Brownie44l1/tinyhttp/internal/files"
	"github.com/Brownie44l1/tinyhttp/internal/routes"
	"github.com/Brownie44l1/tinyhttp/internal/server"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	config, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	logger, err := server.NewLogger(stderr, config.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	r := routes.New(files.NewStore(config.Directory))
	r.Use(server.LoggingMiddleware(logger))

	srv := server.New(config, r)
	srv.Logger = logger

	if err := srv.Listen(); err != nil {
		logger.Error("failed to bind", server.Field{Key: "error", Value: err})
		return 1
	}

	if err := srv.Serve(); err != nil {
		logger.Error("server error", server.Field{Key: "error", Value: err})
		return 1
	}
	return 0
}

// parseFlags accepts --directory, --addr and --log-level. Defaults keep the
// fixed 127.0.0.1:4221 address.
func parseFlags(args []string, output io.Writer) (server.Config, error) {
	config := server.DefaultConfig()

	fs := flag.NewFlagSet("httpserver", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&config.Directory, "directory", config.Directory, "directory served by /files/{name}")
	fs.StringVar(&config.Addr, "addr", config.Addr, "TCP address to listen on")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return server.Config{}, err
	}
	return config, nil
}
