// Command labauth serves the demo-labs authentication API.
//
// Configuration is read from config.yml (or config/<env>.yml), .env and the
// environment. The signing secret is only taken from AUTH_TOKEN_SECRET.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/kbukum/labauth/app"
	"github.com/kbukum/labauth/bootstrap"
	"github.com/kbukum/labauth/config"
	"github.com/kbukum/labauth/logger"
	"github.com/kbukum/labauth/observability"
	"github.com/kbukum/labauth/server"
	"github.com/kbukum/labauth/version"
)

func main() {
	if err := run(); err != nil {
		logger.Error("labauth exited", logger.ErrorFields("run", err))
		os.Exit(1)
	}
}

func run() error {
	configFile := flag.String("config", "", "path to the YAML config file")
	showVersion := flag.Bool("version", false, "print build information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().String())
		return nil
	}

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	cfg := &app.Config{}
	if err := config.LoadConfig("labauth", cfg, opts...); err != nil {
		return err
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().Version
	}

	b, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	log := b.Logger

	ctx := context.Background()
	providers, err := observability.Init(ctx, cfg.Observability, observability.ServiceInfo{
		Name:        cfg.Name,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	}, log)
	if err != nil {
		return err
	}
	b.OnStop(providers.Shutdown)

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	for _, c := range a.Components() {
		if err := b.RegisterComponent(c); err != nil {
			return err
		}
	}

	b.OnConfigure(func(ctx context.Context, b *bootstrap.App[*app.Config]) error {
		if err := a.Configure(ctx, b.Components.HealthAll); err != nil {
			return err
		}
		return b.RegisterComponent(server.NewComponent(a.Server()))
	})

	log.Info("Configuration loaded", map[string]interface{}{
		"settings": cfg.Describe(),
	})
	if cfg.IsProduction() && cfg.Store.Backend == app.BackendMemory {
		log.Warn("Memory credential store in production, identities are lost on restart")
	}
	return b.Run(ctx)
}
