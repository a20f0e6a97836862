package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alexanderramin/shopfloor/internal/app"
	"github.com/alexanderramin/shopfloor/internal/cli"
	"github.com/alexanderramin/shopfloor/internal/config"
	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/httpapi"
	"github.com/alexanderramin/shopfloor/internal/logger"
	"github.com/alexanderramin/shopfloor/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configPath finds --config ahead of cobra so configuration is loaded before
// the command tree is built. SHOPFLOOR_CONFIG is the fallback.
func configPath(args []string) string {
	flag := "--" + cli.ConfigFlag
	for i, arg := range args {
		switch {
		case arg == "--":
			return os.Getenv("SHOPFLOOR_CONFIG")
		case arg == flag && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(arg, flag+"="):
			return strings.TrimPrefix(arg, flag+"=")
		}
	}
	return os.Getenv("SHOPFLOOR_CONFIG")
}

func run() error {
	cfg, err := config.Load(configPath(os.Args[1:]))
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	closer := logger.Init(cfg.Log)
	defer closer.Close()
	log := slog.Default()

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	observers := service.MultiUseCaseObserver{service.NewSlogUseCaseObserver(log)}
	httpOpts := httpapi.Options{Logger: log, CORSOrigins: cfg.Server.CORSOrigins}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics, err := service.NewPrometheusUseCaseObserver(reg)
		if err != nil {
			return fmt.Errorf("registering metrics: %w", err)
		}
		observers = append(observers, metrics)
		httpOpts.Metrics = reg
	}

	shop := app.NewShop(database, app.ShopConfig{
		Location: loc,
		Observer: observers,
	})

	a := &cli.App{
		Shop: shop,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
		PollInterval: cfg.Poll.Interval,
		Addr:         cfg.Server.Addr,
		HTTP:         httpOpts,
	}

	return cli.NewRootCmd(a).ExecuteContext(context.Background())
}
