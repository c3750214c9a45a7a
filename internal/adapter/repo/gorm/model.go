package gormrepo

type Player struct {
	UserID   uint64 `gorm:"column:user_id;primaryKey"`
	LastName string `gorm:"column:last_name"`
	LastSeen int64  `gorm:"column:last_seen"`
}

func (Player) TableName() string { return "players" }

// Counter is one (player, key) total. The composite primary key makes the
// additive upsert in AddMany a single statement per batch.
type Counter struct {
	UserID uint64  `gorm:"column:user_id;primaryKey"`
	Key    string  `gorm:"column:key;primaryKey"`
	Value  float64 `gorm:"column:value"`
}

func (Counter) TableName() string { return "counters" }
