// Command migrate applies or rolls back the embedded PostgreSQL schema.
//
//	migrate [-config path] up|down
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-job-tracker/internal/core/config"
	"go-job-tracker/internal/core/database"
	"go-job-tracker/internal/core/logger"
)

func main() {
	_ = godotenv.Load()
	path := flag.String("config", os.Getenv("CONFIG_PATH"), "config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: migrate [-config path] up|down\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	dir := database.Direction(flag.Arg(0))
	if flag.NArg() != 1 || (dir != database.Up && dir != database.Down) {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load(*path)
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{})
	defer cleanup()

	if cfg.DB.Driver != "postgres" {
		log.Fatal("sql migrations target postgres only", zap.String("driver", cfg.DB.Driver))
	}
	if err := database.Migrate(cfg.DB.DSN, dir, log); err != nil {
		log.Fatal("migrate failed", zap.String("direction", string(dir)), zap.Error(err))
	}
	log.Info("migrate done", zap.String("direction", string(dir)))
}
