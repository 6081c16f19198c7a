// Package main copies spells from the D&D 5e API into the backend spells
// table, either from a CSV of names or a whole class list.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/KirkDiggler/character-sheet/internal/clients/dnd5e"
	"github.com/KirkDiggler/character-sheet/internal/config"
	"github.com/KirkDiggler/character-sheet/internal/observability"
	"github.com/KirkDiggler/character-sheet/internal/repositories/spells"
	"github.com/KirkDiggler/character-sheet/internal/services/spellimport"
	"github.com/KirkDiggler/character-sheet/internal/storage/postgres"
)

func main() {
	csvPath := flag.String("csv", "", "CSV with name, level and school columns")
	class := flag.String("class", "", "import every spell for this class, e.g. wizard")
	level := flag.Int("level", -1, "with -class, only this spell level")
	flag.Parse()

	if (*csvPath == "") == (*class == "") {
		fmt.Fprintln(os.Stderr, "usage: import-spells (-csv FILE | -class CLASS [-level N])")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, postgres.Config{URL: cfg.Backend.URL, ServiceKey: cfg.Backend.ServiceKey})
	if err != nil {
		logger.Fatal("failed to connect to backend", zap.Error(err))
	}
	defer pool.Close()

	client, err := dnd5e.New(&dnd5e.Config{
		HttpClient: &http.Client{Timeout: cfg.DND5E.Timeout},
	})
	if err != nil {
		logger.Fatal("failed to create D&D 5e client", zap.Error(err))
	}

	importer := spellimport.New(&spellimport.Config{
		Client:     client,
		Repository: spells.NewPostgresRepository(&spells.PostgresRepoConfig{DB: pool.DB()}),
		Delay:      cfg.Import.Delay,
		Logger:     logger,
	})

	var result *spellimport.Result
	if *csvPath != "" {
		result, err = importFile(ctx, importer, *csvPath)
	} else {
		var lvl *int
		if *level >= 0 {
			lvl = level
		}
		result, err = importer.ImportClass(ctx, *class, lvl)
	}
	if result != nil {
		report(os.Stdout, result)
	}
	if err != nil {
		logger.Error("import stopped", zap.Error(err))
		os.Exit(1)
	}
	if result.Failed > 0 {
		os.Exit(1)
	}
}

func importFile(ctx context.Context, importer *spellimport.Importer, path string) (*spellimport.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return importer.ImportCSV(ctx, f)
}

func report(w io.Writer, r *spellimport.Result) {
	fmt.Fprintf(w, "imported %d, skipped %d, failed %d\n", r.Success, r.Skipped, r.Failed)
	for _, f := range r.Failures {
		fmt.Fprintf(w, "  %s: %v\n", f.Name, f.Err)
	}
}
