package ws

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/Dyls123/RustStatsExporter/internal/adapter/world/runtime"
	"github.com/Dyls123/RustStatsExporter/internal/app/ingest"
	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
	"github.com/Dyls123/RustStatsExporter/internal/domain/events"
	"github.com/Dyls123/RustStatsExporter/internal/domain/stats"
)

// Frame type tags on the wire.
const (
	typeGather          = "gather"
	typeWeaponFired     = "weapon_fired"
	typeExplosiveThrown = "explosive_thrown"
	typeEntityDeath     = "entity_death"
	typeLootEnd         = "loot_end"
	typeCraftDone       = "craft_done"
	typeConnected       = "connected"
	typeDisconnected    = "disconnected"
	typeActors          = "actors"
)

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// actorFrame is the periodic full actor-state sync. It replaces the runtime
// cache wholesale, so actors missing from a frame fall out of it.
type actorFrame struct {
	Actors []wireActor `json:"actors"`
}

type wireActor struct {
	ID        uint64     `json:"actor_id"`
	Name      string     `json:"name"`
	Alive     bool       `json:"alive"`
	Position  stats.Vec3 `json:"position"`
	Currency  int64      `json:"currency"`
	Apparatus string     `json:"apparatus"`
}

// Dispatcher decodes feed frames and routes them to the event handlers and
// the runtime actor cache.
type Dispatcher struct {
	Events ingest.UseCase
	World  *runtime.Provider
	Logger *log.Logger
	Debug  bool
}

// Dispatch routes one raw frame. Unknown frame types are ignored so the host
// can grow its feed without breaking older exporters.
func (d *Dispatcher) Dispatch(raw []byte) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}

	switch env.Type {
	case typeGather:
		var ev events.Gather
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return fmt.Errorf("decode %s: %w", env.Type, err)
		}
		d.Events.HandleGather(ev)

	case typeWeaponFired:
		var ev events.WeaponFired
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return fmt.Errorf("decode %s: %w", env.Type, err)
		}
		d.Events.HandleWeaponFired(ev)

	case typeExplosiveThrown:
		var ev events.ExplosiveThrown
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return fmt.Errorf("decode %s: %w", env.Type, err)
		}
		d.Events.HandleExplosiveThrown(ev)

	case typeEntityDeath:
		var ev events.EntityDeath
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return fmt.Errorf("decode %s: %w", env.Type, err)
		}
		d.Events.HandleEntityDeath(ev)

	case typeLootEnd:
		var ev events.LootEnd
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return fmt.Errorf("decode %s: %w", env.Type, err)
		}
		d.Events.HandleLootEnd(ev)

	case typeCraftDone:
		var ev events.CraftDone
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return fmt.Errorf("decode %s: %w", env.Type, err)
		}
		d.Events.HandleCraftDone(ev)

	case typeConnected:
		var ev events.Connected
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return fmt.Errorf("decode %s: %w", env.Type, err)
		}
		d.Events.HandleConnected(ev)

	case typeDisconnected:
		var ev events.Disconnected
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return fmt.Errorf("decode %s: %w", env.Type, err)
		}
		d.Events.HandleDisconnected(ev)
		if d.World != nil {
			d.World.Remove(ev.ActorID)
		}

	case typeActors:
		var frame actorFrame
		if err := json.Unmarshal(env.Data, &frame); err != nil {
			return fmt.Errorf("decode %s: %w", env.Type, err)
		}
		if d.World != nil {
			d.World.Replace(toStatuses(frame.Actors))
		}
		// The sync frame carries names too, so a freshly started process
		// learns them without waiting for the next connect.
		for _, a := range frame.Actors {
			d.Events.HandleConnected(events.Connected{ActorID: a.ID, Name: a.Name})
		}

	default:
		if d.Debug && d.Logger != nil {
			d.Logger.Printf("feed: ignoring frame type %q", env.Type)
		}
	}
	return nil
}

func toStatuses(actors []wireActor) []ports.ActorStatus {
	out := make([]ports.ActorStatus, 0, len(actors))
	for _, a := range actors {
		out = append(out, ports.ActorStatus{
			ID:        a.ID,
			Name:      a.Name,
			Alive:     a.Alive,
			Position:  a.Position,
			Currency:  a.Currency,
			Apparatus: a.Apparatus,
		})
	}
	return out
}
