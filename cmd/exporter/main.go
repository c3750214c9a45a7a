package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Dyls123/RustStatsExporter/internal/adapter/export/filebackup"
	"github.com/Dyls123/RustStatsExporter/internal/adapter/export/httpsender"
	"github.com/Dyls123/RustStatsExporter/internal/adapter/feed/ws"
	statsinmem "github.com/Dyls123/RustStatsExporter/internal/adapter/stats/inmemory"
	worldruntime "github.com/Dyls123/RustStatsExporter/internal/adapter/world/runtime"
	"github.com/Dyls123/RustStatsExporter/internal/app/export"
	"github.com/Dyls123/RustStatsExporter/internal/app/gamble"
	"github.com/Dyls123/RustStatsExporter/internal/app/ingest"
	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
	"github.com/Dyls123/RustStatsExporter/internal/app/sampler"
	"github.com/Dyls123/RustStatsExporter/internal/config"
)

func main() {
	cfgPath := os.Getenv("EXPORTER_CONFIG")
	if cfgPath == "" {
		cfgPath = "exporter.yaml"
	}
	cfg := config.LoadExporter(cfgPath)
	if cfg.FeedURL == "" {
		log.Fatalf("feed_url is required in %s", cfgPath)
	}

	logger := log.Default()
	store := statsinmem.NewStore()
	world := worldruntime.NewProvider()
	tracker := gamble.NewTracker(store)
	smp := sampler.New(world, store, tracker, cfg.SamplePeriod(), logger)

	ingestUC := ingest.UseCase{
		Store:     store,
		Dedup:     statsinmem.NewDedup(),
		Resetters: []ingest.Resetter{tracker, smp},
		Logger:    logger,
		Debug:     cfg.LogDebug,
	}

	feed := &ws.Client{
		URL: cfg.FeedURL,
		Dispatcher: &ws.Dispatcher{
			Events: ingestUC,
			World:  world,
			Logger: logger,
			Debug:  cfg.LogDebug,
		},
		Logger: logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go smp.Run(ctx)
	go func() {
		if err := feed.Run(ctx); err != nil && ctx.Err() == nil {
			log.Fatalf("event feed: %v", err)
		}
	}()

	if cfg.APIURL == "" {
		logger.Println("api_url is empty, flushing disabled; counters accumulate in memory only")
		<-ctx.Done()
		return
	}

	var backup ports.BackupWriter
	if cfg.BackupPath != "" {
		backup = &filebackup.Writer{Path: cfg.BackupPath}
	}
	pipeline := &export.Pipeline{
		Store:             store,
		Sender:            &httpsender.Sender{URL: cfg.APIURL, APIKey: cfg.APIKey, Gzip: cfg.GzipUpload},
		Backup:            backup,
		Interval:          cfg.FlushInterval(),
		Logger:            logger,
		ResetRangeOnFlush: cfg.ResetRangeOnFlush,
	}

	logger.Printf("exporter running: feed=%s flush every %s", cfg.FeedURL, cfg.FlushInterval())
	pipeline.Run(ctx)
}
