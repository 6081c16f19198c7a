// Package main applies the backend schema migrations.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/KirkDiggler/character-sheet/internal/config"
	"github.com/KirkDiggler/character-sheet/internal/storage/postgres"
)

func main() {
	start := time.Now()

	direction := flag.String("direction", "up", "migration direction: up or down")
	steps := flag.Int("steps", 0, "number of steps (0 = all)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	dsn, err := postgres.Config{URL: cfg.Backend.URL, ServiceKey: cfg.Backend.ServiceKey}.DSN()
	if err != nil {
		log.Fatalf("building dsn: %v", err)
	}

	result, err := postgres.Migrate(dsn, postgres.Direction(*direction), *steps)
	if err != nil {
		log.Fatalf("%v", err)
	}

	elapsed := time.Since(start)
	if result.NoChange {
		fmt.Fprintf(os.Stdout, "no changes (version=%d dirty=%v) [%s]\n", result.Version, result.Dirty, elapsed)
		return
	}
	fmt.Fprintf(os.Stdout, "migrated %s to version=%d dirty=%v [%s]\n", *direction, result.Version, result.Dirty, elapsed)
}
