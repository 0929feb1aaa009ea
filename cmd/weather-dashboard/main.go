package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-dashboard/config"
	v1 "weather-dashboard/internal/controllers/http/v1"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/internal/scheduler"
	"weather-dashboard/internal/services/city"
	"weather-dashboard/internal/services/session"
	"weather-dashboard/internal/services/weather"
	"weather-dashboard/pkg/httpserver"
	"weather-dashboard/pkg/logger"
	"weather-dashboard/pkg/observe"
)

// @title Weather Dashboard API
// @version 1.0.0
// @description Session-scoped weather dashboard: geolocation or city search in, current conditions and forecast out.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Dashboard
// @tag.description Session dashboard and fetch cycles
// @tag.name Search
// @tag.description Typeahead city search
// @tag.name Weather
// @tag.description Stateless weather lookup
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	writers := []io.Writer{os.Stdout}
	var hook *observe.SentryHook
	if cnf.Observe.SentryDSN != "" {
		hook = observe.NewSentryHook(cnf.App.Env, cnf.App.Name, 0, cnf.IsDevelopment(), cnf.Observe.SentryDSN)
		writers = append(writers, hook)
	}

	l := logger.New(logger.Options{
		AppName: cnf.App.Name,
		AppEnv:  cnf.App.Env,
		Level:   cnf.Log.Level,
		Format:  cnf.Log.Format,
	}, writers...)
	if hook != nil {
		hook.SetLogger(l)
	}

	shutdownTracer, err := observe.InitTracer(cnf.App.Name, cnf.App.Version, cnf.Observe.ZipkinURL)
	if err != nil {
		l.Fatal("cannot init tracer", map[string]any{"err": err.Error()})
	}

	app := httpserver.InitFiberServer(httpserver.Options{
		AppName:      cnf.App.Name,
		ReadTimeout:  time.Duration(cnf.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cnf.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cnf.Server.IdleTimeout) * time.Second,
	}, l)

	repos := repositories.InitRepositories(cnf, l)

	fetcher := weather.NewFetcher(city.NewResolver(repos.Geocoding, l), repos.Weather, l)

	sessions := session.NewManager(fetcher, repos.Cities, session.Options{
		CountryIDs: cnf.Cities.CountryIDs,
		Debounce:   cnf.Search.Debounce,
	}, l)

	sweeper := scheduler.New(sessions, cnf.Session.SweepInterval, cnf.Session.IdleTimeout, l)
	if err := sweeper.Start(); err != nil {
		l.Fatal("cannot start session sweeper", map[string]any{"err": err.Error()})
	}

	v1.NewRouter(
		app,
		"Weather Dashboard",
		cnf.IsProduction(),
		sessions,
		fetcher,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port": cnf.Server.Port,
		"env":  cnf.App.Env,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		sweeper.Stop()
		sessions.Close()
		_ = shutdownTracer(shutdownCtx)
		if hook != nil {
			hook.Flush()
		}
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
