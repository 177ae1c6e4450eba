package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/customeros/mailposture/domainreport"
	"github.com/customeros/mailposture/internal/config"
	"github.com/customeros/mailposture/internal/logger"
	"github.com/customeros/mailposture/internal/syntax"
	"github.com/customeros/mailposture/render"
)

func scanCommand(cfg *config.Config, log logger.Logger) *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "Check one or more domains and print or export the results",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "domains",
				Usage:    "domains to check, comma-separated or repeated",
				Required: true,
			},
			dnsServerFlag(cfg),
			&cli.BoolFlag{
				Name:  "csv",
				Usage: "export the results to a CSV file instead of the console",
			},
			&cli.StringFlag{
				Name:  "report-location",
				Usage: "directory the CSV report is written to (default: home directory)",
				Value: cfg.Report.Location,
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "CSV report filename (default: derived from domains and timestamp)",
			},
			&cli.BoolFlag{
				Name:  "details",
				Usage: "show raw record text and authorized senders in the console table",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "number of domains checked in parallel",
				Value: cfg.Report.Workers,
			},
		},
		Action: func(c *cli.Context) error {
			domains := parseDomains(c.StringSlice("domains"), log)
			if len(domains) == 0 {
				return cli.Exit("no valid domains to check", 1)
			}

			resolver := newResolver(cfg, c.String("dns-server"))
			checker := domainreport.NewChecker(resolver, log)

			reports := checker.CheckAll(c.Context, domains, c.Int("workers"))

			if c.Bool("csv") {
				path, err := render.CSVPath(c.String("report-location"), c.String("file"), domains, time.Now())
				if err != nil {
					return cli.Exit(err.Error(), 1)
				}
				if err := render.CSV(reports, path); err != nil {
					return cli.Exit(err.Error(), 1)
				}
				fmt.Println("Report written to", path)
				return nil
			}

			render.Console(os.Stdout, reports, c.Bool("details"))
			return nil
		},
	}
}

// parseDomains splits comma-separated values, normalizes each entry and drops
// the ones that cannot be turned into a usable domain.
func parseDomains(values []string, log logger.Logger) []string {
	var domains []string
	for _, value := range values {
		for _, entry := range strings.Split(value, ",") {
			ok, domain := syntax.NormalizeDomain(entry)
			if !ok {
				log.Warn("skipping invalid domain", zap.String("input", entry))
				continue
			}
			domains = append(domains, domain)
		}
	}
	return domains
}
