// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/tokenverify/facebook"
	"github.com/joho/godotenv"
)

// envConfig is read from the environment, after an optional .env file is
// loaded.
type envConfig struct {
	AccessToken   string `env:"FACEBOOK_ACCESS_TOKEN,required"`
	ClientSecret  string `env:"FACEBOOK_CLIENT_SECRET"`
	ProfileFields string `env:"FACEBOOK_PROFILE_FIELDS"`
	EndpointURL   string `env:"FACEBOOK_ENDPOINT_URL" envDefault:"https://graph.facebook.com/v2.7/me"`
	ProviderCA    string `env:"FACEBOOK_PROVIDER_CA"`
}

func main() {
	envFile := flag.String("env-file", ".env", "optional file of environment variables to load")
	timeout := flag.Duration("timeout", 10*time.Second, "maximum time to wait for the provider")
	logLevel := flag.String("log-level", "info", "log level: trace, debug, info, warn, error")
	flag.Parse()

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "facebook-verify",
		Level: hclog.LevelFromString(*logLevel),
	})

	if err := run(logger, *envFile, *timeout); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(logger hclog.Logger, envFile string, timeout time.Duration) error {
	const op = "run"
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: unable to load %s: %w", op, envFile, err)
	}

	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("%s: unable to read environment: %w", op, err)
	}

	opts := []facebook.Option{
		facebook.WithEndpointURL(cfg.EndpointURL),
		facebook.WithProviderCA(cfg.ProviderCA),
	}
	if cfg.ClientSecret != "" {
		opts = append(opts, facebook.WithClientSecret(facebook.ClientSecret(cfg.ClientSecret)))
	}
	if fields := facebook.ParseProfileFields(cfg.ProfileFields); len(fields) > 0 {
		opts = append(opts, facebook.WithProfileFields(fields...))
	}
	c, err := facebook.NewConfig(opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	v, err := facebook.NewVerifier(c, facebook.WithLogger(logger.Named("verifier")))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	defer cancelTimeout()

	p, err := v.Verify(ctx, cfg.AccessToken)
	if err != nil {
		var pErr *facebook.ProviderError
		var rErr *facebook.RequestError
		switch {
		case errors.As(err, &pErr):
			logger.Error("access token rejected", "type", pErr.Type, "code", pErr.Code, "subcode", pErr.Subcode, "fbtrace_id", pErr.TraceID, "status", pErr.StatusCode)
		case errors.As(err, &rErr):
			logger.Error("provider request failed", "status", rErr.StatusCode, "body", rErr.RawBody)
		case errors.Is(err, facebook.ErrNetwork):
			logger.Error("unable to reach provider", "error", err)
		}
		return fmt.Errorf("%s: verification failed: %w", op, err)
	}
	logger.Info("access token verified", "id", p.ID())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
