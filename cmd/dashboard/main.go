package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tankgraph/internal/client"
	"tankgraph/internal/dashboard"
	"tankgraph/internal/handlers"
	"tankgraph/internal/logger"
	"tankgraph/internal/server"

	"github.com/spf13/viper"
)

func main() {
	log := logger.Get(logger.InfoLevel)

	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	reader := client.New(viper.GetString("dashboard.api_base_url"))

	ctrl, err := dashboard.New(reader, log, dashboard.Options{
		TimeRange:       viper.GetString("dashboard.time_range"),
		RefreshInterval: time.Duration(viper.GetInt("dashboard.refresh_interval_s")) * time.Second,
	})
	if err != nil {
		log.Fatalw("invalid dashboard options", "err", err)
	}

	// context for the controller's refresh scheduler
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctrl.Start(ctx)

	dashHandler := handlers.NewDashboardHandler(ctrl, log)

	srv := &server.Server{}
	go func() {
		port := viper.GetString("dashboard.port")
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, dashHandler.InitRoutes()); err != nil {
			log.Fatalw("error starting dashboard server", "err", err)
		}
	}()

	waitForShutdown(cancel, ctrl, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	viper.SetDefault("dashboard.api_base_url", "http://localhost:8000")
	viper.SetDefault("dashboard.time_range", "all")
	viper.SetDefault("dashboard.refresh_interval_s", 30)
	return viper.ReadInConfig()
}

// waitForShutdown stops the controller's scheduler and drains the server on
// SIGINT/SIGTERM.
func waitForShutdown(cancel context.CancelFunc, ctrl *dashboard.Controller, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down dashboard...")

	ctrl.Stop()
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
