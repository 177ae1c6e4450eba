// Package cli wires the command surface to the lookup pipeline and the
// renderers.
package cli

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/customeros/mailposture/internal/config"
	"github.com/customeros/mailposture/internal/dns"
	"github.com/customeros/mailposture/internal/logger"
)

var version = "dev"

// Run parses args and executes the selected command.
func Run(args []string) error {
	cfg, err := config.InitConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	defer func() { _ = log.Sync() }()

	return newApp(cfg, log).Run(args)
}

func newApp(cfg *config.Config, log logger.Logger) *cli.App {
	return &cli.App{
		Name:    "mailposture",
		Usage:   "DNS mail-posture scanner and report generator",
		Version: version,
		Commands: []*cli.Command{
			scanCommand(cfg, log),
			reportCommand(cfg, log),
			bulkCommand(cfg, log),
			versionCommand(),
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the mailposture version",
		Action: func(c *cli.Context) error {
			fmt.Printf("mailposture %s\n", version)
			return nil
		},
	}
}

// newResolver builds the resolver for a command invocation, letting the
// --dns-server flag override the configured server.
func newResolver(cfg *config.Config, server string) *dns.ServerResolver {
	if server == "" {
		server = cfg.Resolver.Server
	}
	return dns.NewResolver(dns.ResolverConfig{
		Server:  server,
		Timeout: time.Duration(cfg.Resolver.TimeoutSeconds) * time.Second,
		Retries: cfg.Resolver.Retries,
	})
}

func dnsServerFlag(cfg *config.Config) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "dns-server",
		Usage: "DNS server to query",
		Value: cfg.Resolver.Server,
	}
}
