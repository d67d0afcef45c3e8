// Command quranhub serves the QuranHub REST API.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/quranhub/quranhub/internal/api"
	"github.com/quranhub/quranhub/internal/config"
	"github.com/quranhub/quranhub/internal/logging"
	"github.com/quranhub/quranhub/internal/store/postgres"
)

const version = "1.0.0"

// CLI defines the command-line interface for quranhub.
var CLI struct {
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error); overrides LOG_LEVEL"`
	LogFormat string `name:"log-format" help:"Log format (json, text)" default:"json"`

	Serve   ServeCmd   `cmd:"" default:"1" help:"Start the REST API server"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// ServeCmd starts the API server.
type ServeCmd struct {
	Port    int      `help:"HTTP server port" default:"8080"`
	Origins []string `help:"Allowed CORS origins (empty allows all)"`
}

func (c *ServeCmd) Run() error {
	cfg := config.Load()

	level := cfg.LogLevel
	if CLI.LogLevel != "" {
		level = CLI.LogLevel
	}
	format := logging.FormatJSON
	if strings.EqualFold(CLI.LogFormat, "text") {
		format = logging.FormatText
	}
	logging.InitLogger(logging.ParseLevel(level), format)

	st, err := postgres.Open(context.Background(), cfg.Database)
	if err != nil {
		return fmt.Errorf("connect storage: %w", err)
	}
	defer st.Close()

	srv := api.New(api.Config{Port: c.Port, AllowedOrigins: c.Origins}, st)
	return srv.Start()
}

// VersionCmd prints the build version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("quranhub version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("quranhub"),
		kong.Description("QuranHub - Quran text, audio and metadata REST API"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
