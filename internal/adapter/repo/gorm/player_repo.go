package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
)

type PlayerRepo struct {
	db *gorm.DB
}

func NewPlayerRepo(db *gorm.DB) PlayerRepo {
	return PlayerRepo{db: db}
}

func (r PlayerRepo) Upsert(ctx context.Context, p ports.PlayerRecord) error {
	row := Player{UserID: p.UserID, LastName: p.LastName, LastSeen: p.LastSeen}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_name", "last_seen"}),
	}).Create(&row).Error
}

func (r PlayerRepo) Get(ctx context.Context, userID uint64) (ports.PlayerRecord, error) {
	var row Player
	if err := getDBFromCtx(ctx, r.db).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.PlayerRecord{}, ports.ErrNotFound
		}
		return ports.PlayerRecord{}, err
	}
	return ports.PlayerRecord{UserID: row.UserID, LastName: row.LastName, LastSeen: row.LastSeen}, nil
}

func (r PlayerRepo) Search(ctx context.Context, q string, limit int) ([]ports.PlayerRecord, error) {
	rows := []Player{}
	err := getDBFromCtx(ctx, r.db).
		Where("last_name ILIKE ?", "%"+q+"%").
		Order("last_seen DESC, user_id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.PlayerRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.PlayerRecord{UserID: row.UserID, LastName: row.LastName, LastSeen: row.LastSeen})
	}
	return out, nil
}

var _ ports.PlayerRepository = PlayerRepo{}
