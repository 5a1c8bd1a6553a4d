// Command rivergen-server exposes river generation over HTTP and keeps
// a catalog of every run.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/vesselsim/rivergen/internal/api"
	"github.com/vesselsim/rivergen/internal/catalog"
	"github.com/vesselsim/rivergen/internal/config"
)

func main() {
	configPath := flag.String("config", "configs/example.yaml", "path to the base generation config file")
	flag.Parse()

	srvCfg := config.LoadServer()
	setupLogging(srvCfg.LogLevel)
	log.Debug("configuration loaded", "port", srvCfg.Port, "catalog", srvCfg.CatalogPath)

	base, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load base generation config", "path", *configPath, "error", err)
	}

	cat, err := catalog.Open(srvCfg.CatalogPath)
	if err != nil {
		log.Fatal("failed to open run catalog", "error", err)
	}
	defer cat.Close()
	log.Debug("run catalog ready", "path", srvCfg.CatalogPath)

	handler := api.NewHandler(base, cat)
	router := api.SetupRoutes(handler)

	server := &http.Server{
		Addr:         ":" + srvCfg.Port,
		Handler:      router,
		ReadTimeout:  srvCfg.ReadTimeout,
		WriteTimeout: srvCfg.WriteTimeout,
		IdleTimeout:  srvCfg.IdleTimeout,
	}

	go func() {
		log.Info("starting rivergen server", "port", srvCfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down server", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srvCfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	log.Info("server exited")
}

func setupLogging(level string) {
	switch level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.Warn("invalid log level, using info", "level", level)
		log.SetLevel(log.InfoLevel)
	}
	log.SetPrefix("[rivergen] ")
}
