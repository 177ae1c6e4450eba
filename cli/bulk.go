package cli

import (
	"github.com/urfave/cli/v2"

	"github.com/customeros/mailposture/bulkscan"
	"github.com/customeros/mailposture/domainreport"
	"github.com/customeros/mailposture/internal/config"
	"github.com/customeros/mailposture/internal/logger"
)

func bulkCommand(cfg *config.Config, log logger.Logger) *cli.Command {
	return &cli.Command{
		Name:      "bulk",
		Usage:     "Check every domain listed in a file and append results to a CSV",
		ArgsUsage: "<input file> <output file>",
		Flags: []cli.Flag{
			dnsServerFlag(cfg),
			&cli.IntFlag{
				Name:  "workers",
				Usage: "number of domains checked in parallel",
				Value: cfg.Report.Workers,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("usage: mailposture bulk <input file> <output file>", 1)
			}

			resolver := newResolver(cfg, c.String("dns-server"))
			checker := domainreport.NewChecker(resolver, log)

			err := bulkscan.Run(c.Context, checker, c.Args().Get(0), c.Args().Get(1), c.Int("workers"))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
	}
}
