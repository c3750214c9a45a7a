package gormrepo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
)

type CounterRepo struct {
	db *gorm.DB
}

func NewCounterRepo(db *gorm.DB) CounterRepo {
	return CounterRepo{db: db}
}

func (r CounterRepo) AddMany(ctx context.Context, userID uint64, deltas map[string]float64) error {
	rows := make([]Counter, 0, len(deltas))
	for key, delta := range deltas {
		if key == "" {
			continue
		}
		rows = append(rows, Counter{UserID: userID, Key: key, Value: delta})
	}
	if len(rows) == 0 {
		return nil
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"value": gorm.Expr("counters.value + excluded.value"),
		}),
	}).Create(&rows).Error
}

func (r CounterRepo) SetMax(ctx context.Context, userID uint64, key string, value float64) error {
	row := Counter{UserID: userID, Key: key, Value: value}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"value": gorm.Expr("GREATEST(counters.value, excluded.value)"),
		}),
	}).Create(&row).Error
}

func (r CounterRepo) Keys(ctx context.Context) ([]string, error) {
	keys := []string{}
	err := getDBFromCtx(ctx, r.db).
		Model(&Counter{}).
		Distinct("key").
		Order("key ASC").
		Pluck("key", &keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (r CounterRepo) Top(ctx context.Context, key string, limit int) ([]ports.LeaderboardRow, error) {
	rows := []ports.LeaderboardRow{}
	err := getDBFromCtx(ctx, r.db).
		Table("counters").
		Select("counters.user_id AS user_id, players.last_name AS last_name, counters.value AS value").
		Joins("LEFT JOIN players ON players.user_id = counters.user_id").
		Where("counters.key = ?", key).
		Order("counters.value DESC, counters.user_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r CounterRepo) ForPlayer(ctx context.Context, userID uint64) (map[string]float64, error) {
	rows := []Counter{}
	err := getDBFromCtx(ctx, r.db).
		Where("user_id = ?", userID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

var _ ports.CounterRepository = CounterRepo{}
