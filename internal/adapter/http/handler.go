// Package httpadapter exposes the collector over HTTP: snapshot ingest for
// exporters and a small read API for leaderboard frontends.
package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/klauspost/compress/gzip"

	"github.com/Dyls123/RustStatsExporter/internal/app/collect"
	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
	"github.com/Dyls123/RustStatsExporter/internal/app/query"
	"github.com/Dyls123/RustStatsExporter/internal/domain/stats"
)

const apiKeyHeader = "X-API-Key"

type Handler struct {
	IngestUC collect.UseCase
	QueryUC  query.UseCase

	// APIKey gates ingest. An empty key disables the gate, which only makes
	// sense on a private network.
	APIKey string

	KPI ingestMetrics
}

type ingestMetrics interface {
	RecordAccepted(players int)
	RecordRejected()
	RecordFailed()
	SnapshotAny() any
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	s.GET("/health", h.health)
	s.POST("/ingest", h.ingest)

	s.GET("/ops/kpi", h.kpi)
	s.GET("/keys", h.keys)
	s.GET("/leaderboard/:key", h.leaderboard)
	s.GET("/players/search", h.searchPlayers)
	s.GET("/players/:id", h.playerDetail)
}

func (h Handler) health(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}

func (h Handler) ingest(c context.Context, ctx *app.RequestContext) {
	if h.APIKey != "" && string(ctx.GetHeader(apiKeyHeader)) != h.APIKey {
		h.recordRejected()
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_api_key", "invalid api key")
		return
	}

	body, err := requestBody(ctx)
	if err != nil {
		h.recordRejected()
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_encoding", err.Error())
		return
	}
	if err := validateSnapshot(body); err != nil {
		h.recordRejected()
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_snapshot", err.Error())
		return
	}

	var snap stats.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		h.recordRejected()
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if err := h.IngestUC.Execute(c, snap); err != nil {
		if h.KPI != nil {
			h.KPI.RecordFailed()
		}
		writeError(ctx, err)
		return
	}
	if h.KPI != nil {
		h.KPI.RecordAccepted(len(snap.Players))
	}
	ctx.JSON(consts.StatusAccepted, map[string]any{"accepted": len(snap.Players)})
}

func (h Handler) recordRejected() {
	if h.KPI != nil {
		h.KPI.RecordRejected()
	}
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi recorder not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func (h Handler) keys(c context.Context, ctx *app.RequestContext) {
	keys, err := h.QueryUC.Keys(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"keys": keys})
}

func (h Handler) leaderboard(c context.Context, ctx *app.RequestContext) {
	key := string(ctx.Param("key"))
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))

	rows, err := h.QueryUC.Leaderboard(c, key, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]any{
			"user_id":   strconv.FormatUint(row.UserID, 10),
			"last_name": row.LastName,
			"value":     row.Value,
		})
	}
	ctx.JSON(consts.StatusOK, out)
}

func (h Handler) searchPlayers(c context.Context, ctx *app.RequestContext) {
	q := string(ctx.Query("q"))
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))

	recs, err := h.QueryUC.Search(c, q, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, toPlayerViews(recs))
}

func (h Handler) playerDetail(c context.Context, ctx *app.RequestContext) {
	id, err := strconv.ParseUint(string(ctx.Param("id")), 10, 64)
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_player_id", "player id must be numeric")
		return
	}
	detail, err := h.QueryUC.Player(c, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{
		"user_id":              strconv.FormatUint(detail.Player.UserID, 10),
		"last_name":            detail.Player.LastName,
		"last_seen":            detail.Player.LastSeen,
		"counters":             detail.Counters,
		"highest_range_kill_m": detail.Counters[collect.KeyHighestRangeKill],
	})
}

func toPlayerViews(recs []ports.PlayerRecord) []map[string]any {
	out := make([]map[string]any, 0, len(recs))
	for _, rec := range recs {
		out = append(out, map[string]any{
			"user_id":   strconv.FormatUint(rec.UserID, 10),
			"last_name": rec.LastName,
			"last_seen": rec.LastSeen,
		})
	}
	return out
}

func requestBody(ctx *app.RequestContext) ([]byte, error) {
	body := ctx.Request.Body()
	encoding := strings.ToLower(string(ctx.GetHeader("Content-Encoding")))
	if encoding == "" {
		return body, nil
	}
	if encoding != "gzip" {
		return nil, errors.New("unsupported content encoding: " + encoding)
	}
	zr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.New("malformed gzip body")
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.New("malformed gzip body")
	}
	return out, nil
}

func validateSnapshot(body []byte) error {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return errors.New("invalid json")
	}
	if err := compiledSnapshotSchema.Validate(doc); err != nil {
		return err
	}
	return nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, query.ErrInvalidRequest), errors.Is(err, collect.ErrEmptySnapshot):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
