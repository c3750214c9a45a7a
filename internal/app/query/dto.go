package query

import "github.com/Dyls123/RustStatsExporter/internal/app/ports"

type PlayerDetail struct {
	Player   ports.PlayerRecord
	Counters map[string]float64
}
