
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"minirates/internal/cache"
	"minirates/internal/config"
	"minirates/internal/history"
	"minirates/internal/pipeline"
	"minirates/internal/render"
	"minirates/internal/scrape"
)

const fetchTimeout = 60 * time.Second

func main() {
	cfgPath := flag.String("config", config.DefaultConfigPath(), "path to config.json")
	force := flag.Bool("force", false, "ignore caches and re-scrape all sources")
	asJSON := flag.Bool("json", false, "print the merged catalog as JSON")
	histN := flag.Int("history", history.MaxSnapshots, "max history points attached per item")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	sourceConfigs, err := cfg.SourceConfigs()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	store := cache.NewStore(filepath.Join(cfg.DataDir, "cache"), log)
	fetcher := scrape.NewFetcher(log)

	sources := make([]pipeline.Source, 0, len(sourceConfigs))
	for _, sc := range sourceConfigs {
		sources = append(sources, pipeline.Source{
			Config:  sc,
			Scraper: scrape.NewAdapter(sc, fetcher, log),
		})
	}

	var hist *history.Store
	if cfg.HistoryEnabled {
		hist, err = history.Open(cfg.HistoryFile)
		if err != nil {
			log.Fatalf("history error: %v", err)
		}
		defer hist.Close()
	}

	svc := pipeline.New(sources, store, cfg.Unit(), histOrNil(hist), log)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	// Ctrl-C aborts in-flight fetches; caches stay consistent because
	// saves are atomic renames.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	merged := svc.GetCatalog(ctx, *force)
	if hist != nil {
		hist.Attach(ctx, &merged, *histN)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(merged); err != nil {
			log.Fatalf("encode error: %v", err)
		}
		return
	}

	unitLabel := "تومان"
	if cfg.CanonicalUnit == "rial" {
		unitLabel = "ریال"
	}
	out := render.Build(merged, render.Options{Digits: cfg.Digits, UnitLabel: unitLabel})
	fmt.Println(out.Text)
}

// histOrNil keeps a typed-nil *history.Store out of the pipeline's
// History interface.
func histOrNil(h *history.Store) pipeline.History {
	if h == nil {
		return nil
	}
	return h
}
