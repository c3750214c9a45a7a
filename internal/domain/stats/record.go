package stats

import "math"

// Well-known counter keys. Most keys are assembled from bucket tables at
// ingestion time; the ones below are fixed.
const (
	KeyDeaths       = "deaths"
	KeyKillsPlayer  = "kills.player"
	KeyKillsAnimal  = "kills.animal"
	KeyKillsNPC     = "kills.npc"
	KeyBarrels      = "barrels.destroyed"
	KeyBradley      = "bradley.destroyed"
	KeyHeli         = "heli.destroyed"
	KeyAirdrops     = "airdrops.collected"
	KeyHackedCrates = "hackedcrates.collected"
	KeyRocketsFired = "rockets.fired"
	KeyDistance     = "distance.m"
	KeyPlaytime     = "playtime.seconds"
	KeyCraftTime    = "craft.time.seconds"
)

// ProfitSuffix marks the single counter family that is allowed to go negative.
const ProfitSuffix = ".profit"

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) DistanceTo(o Vec3) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	dz := v.Z - o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// PlayerSnapshot is one actor's entry in an export payload. Field names match
// the collector's ingest contract.
type PlayerSnapshot struct {
	UserID            uint64             `json:"user_id"`
	LastName          string             `json:"last_name"`
	Counters          map[string]float64 `json:"k"`
	HighestRangeKillM float64            `json:"highest_range_kill_m"`
}

// Snapshot is an atomic point-in-time copy of every known actor record,
// produced only for export.
type Snapshot struct {
	ServerUnixTime int64            `json:"server_unix_time"`
	Players        []PlayerSnapshot `json:"players"`
}

// ActorIDs lists the identities present in the snapshot, in payload order.
func (s Snapshot) ActorIDs() []uint64 {
	ids := make([]uint64, 0, len(s.Players))
	for _, p := range s.Players {
		ids = append(ids, p.UserID)
	}
	return ids
}

// KillRange picks the exported range for a qualifying player kill: the
// reported projectile travel distance when positive, otherwise the Euclidean
// distance between the attacker's eyes and the victim.
func KillRange(projectileDistance float64, attackerEye, victimPos Vec3) float64 {
	if projectileDistance > 0 {
		return projectileDistance
	}
	return attackerEye.DistanceTo(victimPos)
}
