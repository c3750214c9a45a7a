// Package config holds the runtime configuration for both binaries. The
// exporter reads a YAML file and writes one with defaults when none exists,
// so an operator always has a concrete file to edit. The collector is
// configured from the environment.
package config

import (
	"errors"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultFlushSeconds  = 30
	minFlushSeconds      = 5
	defaultSampleSeconds = 0.5
	minSampleSeconds     = 0.1
)

type Exporter struct {
	// APIURL is the collector ingest endpoint. Flushing is disabled while it
	// is empty.
	APIURL string `yaml:"api_url"`
	APIKey string `yaml:"api_key"`

	// FeedURL is the host's websocket event feed.
	FeedURL string `yaml:"feed_url"`

	FlushSeconds  int     `yaml:"flush_seconds"`
	SampleSeconds float64 `yaml:"sample_seconds"`

	BackupPath string `yaml:"backup_path"`
	GzipUpload bool   `yaml:"gzip_upload"`

	// ResetRangeOnFlush makes the longest-kill distance per-cycle instead of
	// cumulative.
	ResetRangeOnFlush bool `yaml:"reset_range_on_flush"`

	LogDebug bool `yaml:"log_debug"`
}

func DefaultExporter() Exporter {
	return Exporter{
		FlushSeconds:  defaultFlushSeconds,
		SampleSeconds: defaultSampleSeconds,
		BackupPath:    "last_batch.json",
	}
}

// LoadExporter reads the config file at path. A missing file gets the
// defaults written to it; an unreadable or invalid file is replaced by the
// defaults with a warning. Loading never blocks startup. Out-of-range
// intervals are clamped rather than rejected.
func LoadExporter(path string) Exporter {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("config: read %s failed (%v), using defaults", path, err)
		}
		cfg := DefaultExporter()
		writeExporter(path, cfg)
		return cfg
	}

	cfg := DefaultExporter()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		log.Printf("config: %s is not valid yaml (%v), rewriting with defaults", path, err)
		cfg = DefaultExporter()
		writeExporter(path, cfg)
		return cfg
	}
	cfg.clamp()
	return cfg
}

// writeExporter persists cfg best-effort; a write failure only warns so a
// read-only config directory cannot stop the process.
func writeExporter(path string, cfg Exporter) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		log.Printf("config: encode defaults: %v", err)
		return
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		log.Printf("config: write %s failed: %v", path, err)
	}
}

func (c *Exporter) clamp() {
	if c.FlushSeconds < minFlushSeconds {
		c.FlushSeconds = defaultFlushSeconds
	}
	if c.SampleSeconds < minSampleSeconds {
		c.SampleSeconds = defaultSampleSeconds
	}
}

func (c Exporter) FlushInterval() time.Duration {
	return time.Duration(c.FlushSeconds) * time.Second
}

func (c Exporter) SamplePeriod() time.Duration {
	return time.Duration(c.SampleSeconds * float64(time.Second))
}
