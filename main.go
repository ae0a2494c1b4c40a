package main

import (
	"github.com/wfunc/drawguess/config"
	"github.com/wfunc/drawguess/directory"
	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/monitor"
	"github.com/wfunc/drawguess/server"
)

func main() {
	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize room directory
	dir, err := newDirectory(cfg)
	if err != nil {
		logger.Log.Fatalf("Failed to connect to room directory: %v", err)
	}
	defer dir.Close()
	logger.Log.Info("Room directory connection successful.")

	// Metrics
	mon := monitor.NewMonitor("drawguess")
	mon.StartServer(cfg.Server.MetricsAddress)

	// Initialize game server
	gameServer := server.NewGameServer(cfg, dir, mon)

	// Start server
	logger.Log.Infof("Starting draw-and-guess server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}

func newDirectory(cfg *config.Config) (directory.Directory, error) {
	pg := cfg.Database.Postgres
	switch cfg.Database.Driver {
	case "pq":
		return directory.NewPostgresDirectory(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
	default:
		return directory.NewGormDirectory(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
	}
}
