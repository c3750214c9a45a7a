// Package ingest maps raw gameplay events onto counter mutations. Malformed
// events (zero identity, empty payload fields) are dropped silently; nothing
// in here is allowed to disturb the host.
package ingest

import (
	"log"

	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
	"github.com/Dyls123/RustStatsExporter/internal/domain/events"
	"github.com/Dyls123/RustStatsExporter/internal/domain/stats"
)

// Dedup guard set names.
const (
	setAirdrops     = "airdrops"
	setHackedCrates = "hackedcrates"
)

// Resetter drops per-actor transient state (gambling context, sampler
// baseline) when the actor disconnects.
type Resetter interface {
	Forget(id uint64)
}

type UseCase struct {
	Store     ports.StatsStore
	Dedup     ports.DedupGuard
	Resetters []Resetter
	Logger    *log.Logger
	Debug     bool
}

func (u UseCase) debugf(format string, args ...any) {
	if u.Debug && u.Logger != nil {
		u.Logger.Printf(format, args...)
	}
}

func (u UseCase) HandleGather(ev events.Gather) {
	if ev.ActorID == 0 || ev.Amount <= 0 {
		return
	}
	bucket, ok := stats.ResourceBucket(ev.Item)
	if !ok {
		return
	}
	u.Store.Add(ev.ActorID, "gather."+bucket, ev.Amount)
	u.debugf("++ %d gather.%s +%v", ev.ActorID, bucket, ev.Amount)
}

func (u UseCase) HandleWeaponFired(ev events.WeaponFired) {
	if ev.ActorID == 0 {
		return
	}
	bucket := stats.AmmoBucket(ev.Ammo)
	if bucket == "rocket" {
		kind := stats.RocketKind(ev.Ammo)
		u.Store.Add(ev.ActorID, "rockets."+kind, 1)
		if kind == "basic" {
			// Legacy key kept for collectors that predate rocket kinds.
			u.Store.Add(ev.ActorID, stats.KeyRocketsFired, 1)
		}
		return
	}
	u.Store.Add(ev.ActorID, "bullets."+bucket, 1)
}

func (u UseCase) HandleExplosiveThrown(ev events.ExplosiveThrown) {
	if ev.ActorID == 0 {
		return
	}
	u.Store.Add(ev.ActorID, "explosive."+stats.ExplosiveKind(ev.Prefab), 1)
}

func (u UseCase) HandleEntityDeath(ev events.EntityDeath) {
	attackerOK := ev.AttackerID != 0 && !ev.AttackerIsNPC && ev.AttackerAlive && ev.AttackerID != ev.VictimID

	switch {
	case stats.IsBarrel(ev.VictimPrefab):
		if attackerOK {
			u.Store.Add(ev.AttackerID, stats.KeyBarrels, 1)
		}

	case stats.IsBradley(ev.VictimPrefab):
		if attackerOK {
			u.Store.Add(ev.AttackerID, stats.KeyBradley, 1)
			u.addWeaponKill(ev, "events")
		}

	case stats.IsHeli(ev.VictimPrefab):
		if attackerOK {
			u.Store.Add(ev.AttackerID, stats.KeyHeli, 1)
			u.addWeaponKill(ev, "events")
		}

	case ev.VictimIsPlayer && !ev.VictimIsNPC:
		if ev.VictimID != 0 {
			u.Store.Add(ev.VictimID, stats.KeyDeaths, 1)
		}
		if attackerOK && ev.VictimID != 0 {
			u.Store.Add(ev.AttackerID, stats.KeyKillsPlayer, 1)
			u.Store.ObserveKillRange(ev.AttackerID,
				stats.KillRange(ev.ProjectileDistanceM, ev.AttackerEye, ev.VictimPos))
			u.addWeaponKill(ev, "pvp")
		}

	case ev.VictimIsPlayer && ev.VictimIsNPC:
		if !attackerOK {
			return
		}
		if subtype, ok := stats.NPCSubtype(ev.VictimPrefab); ok {
			u.Store.Add(ev.AttackerID, "kills."+subtype, 1)
			if subtype == "scientist" {
				u.addWeaponKill(ev, "scientist")
				return
			}
		} else {
			u.Store.Add(ev.AttackerID, stats.KeyKillsNPC, 1)
		}
		u.addWeaponKill(ev, "pve")

	default:
		if !attackerOK {
			return
		}
		if species, ok := stats.AnimalSpecies(ev.VictimPrefab); ok {
			u.Store.Add(ev.AttackerID, stats.KeyKillsAnimal+"."+species, 1)
			u.addWeaponKill(ev, "pve")
			return
		}
		if ev.VictimIsNPC {
			u.Store.Add(ev.AttackerID, stats.KeyKillsNPC, 1)
			u.addWeaponKill(ev, "pve")
		}
	}
}

func (u UseCase) addWeaponKill(ev events.EntityDeath, scope string) {
	key := stats.WeaponKey(ev.WeaponItem, ev.WeaponPrefab)
	if key == "" {
		return
	}
	u.Store.Add(ev.AttackerID, "kills.weapon."+scope+"."+key, 1)
}

func (u UseCase) HandleLootEnd(ev events.LootEnd) {
	if ev.ActorID == 0 {
		return
	}
	kind, ok := stats.LootKind(ev.Prefab)
	if !ok {
		return
	}
	switch kind {
	case "airdrop":
		if u.Dedup.TryClaim(setAirdrops, ev.ObjectID) {
			u.Store.Add(ev.ActorID, stats.KeyAirdrops, 1)
		}
	case "hackedcrate":
		if u.Dedup.TryClaim(setHackedCrates, ev.ObjectID) {
			u.Store.Add(ev.ActorID, stats.KeyHackedCrates, 1)
		}
	}
}

func (u UseCase) HandleCraftDone(ev events.CraftDone) {
	if ev.ActorID == 0 {
		return
	}
	elapsed := craftSeconds(ev)
	if elapsed <= 0 {
		return
	}
	u.Store.Add(ev.ActorID, stats.KeyCraftTime, elapsed)
}

func craftSeconds(ev events.CraftDone) float64 {
	if ev.StartedAtUnixMs > 0 && ev.FinishedAtUnixMs > ev.StartedAtUnixMs {
		return float64(ev.FinishedAtUnixMs-ev.StartedAtUnixMs) / 1000
	}
	qty := ev.Quantity
	if qty <= 0 {
		qty = 1
	}
	return ev.RecipeSeconds * float64(qty)
}

func (u UseCase) HandleConnected(ev events.Connected) {
	if ev.ActorID == 0 {
		return
	}
	u.Store.SetName(ev.ActorID, ev.Name)
}

func (u UseCase) HandleDisconnected(ev events.Disconnected) {
	if ev.ActorID == 0 {
		return
	}
	for _, r := range u.Resetters {
		r.Forget(ev.ActorID)
	}
}
