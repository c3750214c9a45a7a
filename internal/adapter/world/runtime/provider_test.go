package runtime

import (
	"context"
	"testing"

	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
)

func TestProvider_ReplaceAndRemove(t *testing.T) {
	p := NewProvider()
	p.Replace([]ports.ActorStatus{
		{ID: 1, Name: "alice", Alive: true},
		{ID: 2, Name: "bob", Alive: true},
		{ID: 0, Name: "ghost"},
	})

	actors, err := p.Actors(context.Background())
	if err != nil {
		t.Fatalf("Actors: %v", err)
	}
	if len(actors) != 2 {
		t.Fatalf("zero ids must be dropped, got %d actors", len(actors))
	}

	p.Remove(1)
	actors, _ = p.Actors(context.Background())
	if len(actors) != 1 || actors[0].ID != 2 {
		t.Fatalf("expected only bob, got %+v", actors)
	}

	p.Replace([]ports.ActorStatus{{ID: 3, Alive: true}})
	actors, _ = p.Actors(context.Background())
	if len(actors) != 1 || actors[0].ID != 3 {
		t.Fatalf("replace must drop absent actors, got %+v", actors)
	}
}
