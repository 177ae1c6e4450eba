package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/customeros/mailposture/internal/logger"
)

type ResolverConfig struct {
	// Server is the DNS server queried for all lookups, host or host:port.
	Server         string `env:"MAILPOSTURE_DNS_SERVER" envDefault:"8.8.8.8"`
	TimeoutSeconds int    `env:"MAILPOSTURE_DNS_TIMEOUT_SECONDS" envDefault:"5"`
	Retries        int    `env:"MAILPOSTURE_DNS_RETRIES" envDefault:"2"`
}

type RecommendConfig struct {
	Url            string `env:"MAILPOSTURE_RECOMMEND_URL" envDefault:"https://api.openai.com/v1/chat/completions"`
	ApiKey         string `env:"MAILPOSTURE_RECOMMEND_API_KEY"`
	Model          string `env:"MAILPOSTURE_RECOMMEND_MODEL" envDefault:"gpt-4o-mini"`
	TimeoutSeconds int    `env:"MAILPOSTURE_RECOMMEND_TIMEOUT_SECONDS" envDefault:"60"`
}

type ReportConfig struct {
	// Location is the directory CSV reports are written to.
	// Empty means the invoking user's home directory.
	Location string `env:"MAILPOSTURE_REPORT_LOCATION"`
	Workers  int    `env:"MAILPOSTURE_WORKERS" envDefault:"4"`
}

type Config struct {
	Resolver  *ResolverConfig
	Recommend *RecommendConfig
	Report    *ReportConfig
	Logger    *logger.Config
}

func InitConfig() (*Config, error) {
	config := &Config{
		Resolver:  &ResolverConfig{},
		Recommend: &RecommendConfig{},
		Report:    &ReportConfig{},
		Logger:    &logger.Config{},
	}

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
