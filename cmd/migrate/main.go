package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"gstbill/internal/config"
	"gstbill/internal/logger"
)

const usage = "Usage: migrate [up|down|steps N|version|force V]"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log, cfg.Server.Environment)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	m, err := migrate.New("file://db/migrations", cfg.DB.DSN())
	if err != nil {
		zl.Fatal("failed to create migrate instance", zap.Error(err))
	}
	defer m.Close()

	cmd := os.Args[1]
	switch cmd {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			zl.Fatal("migration up failed", zap.Error(err))
		}
		zl.Info("migrations applied")

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			zl.Fatal("migration down failed", zap.Error(err))
		}
		zl.Info("migrations reverted")

	case "steps":
		n := intArg(zl, "steps")
		if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			zl.Fatal("migration steps failed", zap.Int("steps", n), zap.Error(err))
		}
		zl.Info("migration steps applied", zap.Int("steps", n))

	case "force":
		v := intArg(zl, "force")
		if err := m.Force(v); err != nil {
			zl.Fatal("force version failed", zap.Int("version", v), zap.Error(err))
		}
		zl.Info("version forced", zap.Int("version", v))

	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			zl.Fatal("failed to get version", zap.Error(err))
		}
		fmt.Printf("version: %d, dirty: %v\n", version, dirty)

	default:
		fmt.Printf("unknown command: %s\n", cmd)
		fmt.Println(usage)
		os.Exit(1)
	}
}

func intArg(zl *zap.Logger, cmd string) int {
	if len(os.Args) < 3 {
		zl.Fatal(cmd + " requires a number argument")
	}
	n, err := strconv.Atoi(os.Args[2])
	if err != nil {
		zl.Fatal("invalid argument", zap.String("command", cmd), zap.Error(err))
	}
	return n
}
