package cli

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/customeros/mailposture/domainreport"
	"github.com/customeros/mailposture/internal/config"
	"github.com/customeros/mailposture/internal/logger"
	"github.com/customeros/mailposture/internal/syntax"
	"github.com/customeros/mailposture/recommend"
	"github.com/customeros/mailposture/render"
)

func reportCommand(cfg *config.Config, log logger.Logger) *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Check a single domain and write an HTML report",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "domain",
				Usage:    "domain to check",
				Required: true,
			},
			dnsServerFlag(cfg),
			&cli.StringFlag{
				Name:  "output",
				Usage: "output file (default: <domain>-DnsReport.html)",
			},
			&cli.BoolFlag{
				Name:  "recommend",
				Usage: "ask the recommendation API for free-text advice and embed it",
			},
		},
		Action: func(c *cli.Context) error {
			ok, domain := syntax.NormalizeDomain(c.String("domain"))
			if !ok {
				return cli.Exit(fmt.Sprintf("invalid domain: %s", c.String("domain")), 1)
			}

			resolver := newResolver(cfg, c.String("dns-server"))
			checker := domainreport.NewChecker(resolver, log)

			report := checker.Check(c.Context, domain)

			if c.Bool("recommend") {
				client := recommend.NewClient(recommend.Config{
					Url:     cfg.Recommend.Url,
					ApiKey:  cfg.Recommend.ApiKey,
					Model:   cfg.Recommend.Model,
					Timeout: time.Duration(cfg.Recommend.TimeoutSeconds) * time.Second,
				})
				text, err := client.Recommendations(c.Context, report)
				if err != nil {
					log.Warn("recommendation API call failed, omitting recommendations section",
						zap.String("domain", domain), zap.Error(err))
				} else {
					report.Recommendations = text
				}
			}

			path := c.String("output")
			if path == "" {
				path = render.HTMLPath(domain)
			}
			if err := render.HTML(report, path); err != nil {
				return cli.Exit(err.Error(), 1)
			}

			fmt.Println("Report written to", path)
			return nil
		},
	}
}
