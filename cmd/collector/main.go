package main

import (
	"context"
	"log"

	"github.com/cloudwego/hertz/pkg/app/server"

	httpadapter "github.com/Dyls123/RustStatsExporter/internal/adapter/http"
	metricsinmem "github.com/Dyls123/RustStatsExporter/internal/adapter/metrics/inmemory"
	gormrepo "github.com/Dyls123/RustStatsExporter/internal/adapter/repo/gorm"
	"github.com/Dyls123/RustStatsExporter/internal/app/collect"
	"github.com/Dyls123/RustStatsExporter/internal/app/query"
	"github.com/Dyls123/RustStatsExporter/internal/config"
)

func main() {
	cfg, err := config.LoadCollector()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := gormrepo.OpenPostgres(cfg.DBDSN)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.ApplyMigrations(context.Background(), db, cfg.MigrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	players := gormrepo.NewPlayerRepo(db)
	counters := gormrepo.NewCounterRepo(db)
	h := httpadapter.Handler{
		IngestUC: collect.UseCase{
			TxManager: gormrepo.NewTxManager(db),
			Players:   players,
			Counters:  counters,
		},
		QueryUC: query.UseCase{
			Players:  players,
			Counters: counters,
			MaxLimit: cfg.MaxLeaderboardLimit,
		},
		APIKey: cfg.APIKey,
		KPI:    metricsinmem.NewRecorder(),
	}

	s := server.Default(server.WithHostPorts(cfg.ListenAddr))
	h.RegisterRoutes(s)

	log.Printf("collector listening on %s", cfg.ListenAddr)
	s.Spin()
}
