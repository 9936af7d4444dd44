package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taxi_dispatch/internal/handlers"
	"taxi_dispatch/internal/logger"
	"taxi_dispatch/internal/position"
	"taxi_dispatch/internal/repository"
	"taxi_dispatch/internal/repository/db"
	"taxi_dispatch/internal/server"
	"taxi_dispatch/internal/service"

	"github.com/spf13/viper"
)

const (
	defaultDBPath      = "dispatch.db"
	defaultTrackerPoll = 500 * time.Millisecond
	defaultSourceTick  = 2 * time.Second
	defaultStepDeg     = 0.0005

	// Helsinki city center, where the simulated receiver wakes up.
	defaultStartLat = 60.1699
	defaultStartLng = 24.9384
)

func main() {
	// load config.yml first so the logger level comes from it
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log.level"))

	// open DB
	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	source := newSource()
	services := service.NewService(repos, source, log)
	apiHandler := handlers.NewHandler(services, log)

	// restore persisted session fields and load history once
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := services.Restore(ctx); err != nil {
		log.Fatalw("failed to restore session", "err", err)
	}
	if err := services.History.Load(ctx); err != nil {
		log.Fatalw("failed to load history", "err", err)
	}

	// start the tracker loop (subscribes/unsubscribes with login state)
	go services.Tracker.Run(ctx, trackerPoll())

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", defaultDBPath)
		dbPath = defaultDBPath
	}
	return db.InitDB(dbPath)
}

// newSource builds the simulated GPS receiver from configuration.
func newSource() position.Source {
	lat := viper.GetFloat64("simulator.start_lat")
	lng := viper.GetFloat64("simulator.start_lng")
	if lat == 0 && lng == 0 {
		lat, lng = defaultStartLat, defaultStartLng
	}
	step := viper.GetFloat64("simulator.step")
	if step <= 0 {
		step = defaultStepDeg
	}
	tick := viper.GetDuration("simulator.tick")
	if tick <= 0 {
		tick = defaultSourceTick
	}
	return position.NewSimulated(lat, lng, step, tick)
}

func trackerPoll() time.Duration {
	if d := viper.GetDuration("tracker.poll"); d > 0 {
		return d
	}
	return defaultTrackerPoll
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful
// shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
