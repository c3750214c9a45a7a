// Package events defines the raw gameplay events the host pushes at the
// exporter. Every event carries the actor's stable identity; the transient
// host-side handle never crosses this boundary.
package events

import "github.com/Dyls123/RustStatsExporter/internal/domain/stats"

// Gather covers dispenser ticks, bonus hits and collectible pickups.
type Gather struct {
	ActorID uint64  `json:"actor_id"`
	Item    string  `json:"item"`
	Amount  float64 `json:"amount"`
}

type WeaponFired struct {
	ActorID uint64 `json:"actor_id"`
	Ammo    string `json:"ammo"`
}

type ExplosiveThrown struct {
	ActorID uint64 `json:"actor_id"`
	Prefab  string `json:"prefab"`
}

// EntityDeath reports any combat entity dying: players, NPCs, animals,
// barrels, the Bradley and the patrol helicopter.
type EntityDeath struct {
	VictimID       uint64     `json:"victim_id"`
	VictimPrefab   string     `json:"victim_prefab"`
	VictimIsPlayer bool       `json:"victim_is_player"`
	VictimIsNPC    bool       `json:"victim_is_npc"`
	VictimPos      stats.Vec3 `json:"victim_pos"`

	AttackerID    uint64     `json:"attacker_id"`
	AttackerIsNPC bool       `json:"attacker_is_npc"`
	AttackerAlive bool       `json:"attacker_alive"`
	AttackerEye   stats.Vec3 `json:"attacker_eye"`

	WeaponItem          string  `json:"weapon_item"`
	WeaponPrefab        string  `json:"weapon_prefab"`
	ProjectileDistanceM float64 `json:"projectile_distance_m"`
}

// LootEnd fires when an actor closes a loot container. ObjectID is the
// world-unique id of the container, used for one-time-credit dedup.
type LootEnd struct {
	ActorID  uint64 `json:"actor_id"`
	Prefab   string `json:"prefab"`
	ObjectID uint64 `json:"object_id"`
}

// CraftDone reports a finished craft task. When both timestamps are present
// the measured wall time wins; otherwise the host's per-recipe duration times
// the quantity is used as an estimate.
type CraftDone struct {
	ActorID          uint64  `json:"actor_id"`
	Quantity         int     `json:"quantity"`
	StartedAtUnixMs  int64   `json:"started_at_unix_ms"`
	FinishedAtUnixMs int64   `json:"finished_at_unix_ms"`
	RecipeSeconds    float64 `json:"recipe_seconds"`
}

type Connected struct {
	ActorID uint64 `json:"actor_id"`
	Name    string `json:"name"`
}

type Disconnected struct {
	ActorID uint64 `json:"actor_id"`
}
