package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/mailposture/internal/config"
	"github.com/customeros/mailposture/internal/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Resolver:  &config.ResolverConfig{Server: "8.8.8.8"},
		Recommend: &config.RecommendConfig{},
		Report:    &config.ReportConfig{Workers: 4},
		Logger:    &logger.Config{},
	}
}

func TestNewAppCommands(t *testing.T) {
	app := newApp(testConfig(), logger.NewNop())

	var names []string
	for _, command := range app.Commands {
		names = append(names, command.Name)
	}
	assert.Equal(t, []string{"scan", "report", "bulk", "version"}, names)
}

func TestVersionCommand(t *testing.T) {
	app := newApp(testConfig(), logger.NewNop())
	require.NoError(t, app.Run([]string{"mailposture", "version"}))
}
