package domainreport

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/customeros/mailposture/internal/dns"
)

// commonSelectors are well-known DKIM selectors probed during a check.
// DKIM keys live at <selector>._domainkey.<domain> and selectors are not
// enumerable, so probing the usual suspects is the best a passive scan can do.
var commonSelectors = []string{
	"google",
	"default",
	"selector1",
	"selector2",
	"k1",
	"mandrill",
	"dkim",
	"mail",
	"s1",
	"s2",
}

// probeDKIM queries TXT records for each common DKIM selector and returns the
// selectors that answered with something DKIM-shaped.
func (c *Checker) probeDKIM(ctx context.Context, domain string) []string {
	var found []string

	for _, selector := range commonSelectors {
		if ctx.Err() != nil {
			break
		}

		name := fmt.Sprintf("%s._domainkey.%s", selector, domain)
		records, err := c.resolver.LookupTXT(ctx, name)
		if err != nil {
			if !dns.IsNotFound(err) {
				c.log.Debug("DKIM selector probe failed",
					zap.String("domain", domain),
					zap.String("selector", selector),
					zap.Error(err),
				)
			}
			continue
		}

		for _, record := range records {
			lower := strings.ToLower(record)
			if strings.Contains(lower, "v=dkim1") || strings.Contains(lower, "p=") {
				found = append(found, selector)
				break
			}
		}
	}

	return found
}
