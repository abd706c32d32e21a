package session

import (
	"context"
	"testing"
	"time"

	"github.com/edalab/pinwire/pkg/schematic"
	"github.com/edalab/pinwire/pkg/sniff"
)

func TestNewAssignsUniqueIDs(t *testing.T) {
	a := New("a.pdsprj", "/tmp/a.pdsprj", sniff.FileInfo{}, schematic.DemoBoard(), DefaultTTL)
	b := New("b.pdsprj", "/tmp/b.pdsprj", sniff.FileInfo{}, nil, DefaultTTL)

	if a.ID == "" || b.ID == "" {
		t.Fatal("empty session ID")
	}
	if a.ID == b.ID {
		t.Error("session IDs collide")
	}
	if a.IsExpired() {
		t.Error("fresh session already expired")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	p := New("blinky.pdsprj", "/tmp/blinky.pdsprj", sniff.FileInfo{Format: "ZIP Archive (Proteus 8+)"}, schematic.DemoBoard(), DefaultTTL)
	if err := store.Set(ctx, p); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Filename != "blinky.pdsprj" {
		t.Fatalf("Get = %+v", got)
	}
	if len(got.Components) != 6 {
		t.Errorf("components lost: %d", len(got.Components))
	}
}

func TestMemoryStoreMiss(t *testing.T) {
	got, err := NewMemoryStore().Get(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("Get(miss) = %+v, want nil", got)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	p := New("old.pdsprj", "/tmp/old.pdsprj", sniff.FileInfo{}, nil, -time.Minute)
	if err := store.Set(ctx, p); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Get(ctx, p.ID); err != ErrExpired {
		t.Errorf("Get(expired) err = %v, want ErrExpired", err)
	}

	if err := store.Cleanup(ctx); err != nil {
		t.Fatal(err)
	}
	got, err := store.Get(ctx, p.ID)
	if err != nil || got != nil {
		t.Errorf("after Cleanup: got %+v, err %v; want nil, nil", got, err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	p := New("x.pdsprj", "/tmp/x.pdsprj", sniff.FileInfo{}, nil, DefaultTTL)
	_ = store.Set(ctx, p)
	if err := store.Delete(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Get(ctx, p.ID); got != nil {
		t.Error("session survived Delete")
	}
}

func TestConnectionsReplacedWholesale(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	p := New("x.pdsprj", "/tmp/x.pdsprj", sniff.FileInfo{}, schematic.DemoBoard(), DefaultTTL)
	p.Connections = []schematic.Connection{{FromComponent: "IC1", FromPin: "D2", ToComponent: "D1", ToPin: "A"}}
	_ = store.Set(ctx, p)

	p.Connections = []schematic.Connection{{FromComponent: "R1", FromPin: "1", ToComponent: "PWR1", ToPin: "OUT"}}
	_ = store.Set(ctx, p)

	got, _ := store.Get(ctx, p.ID)
	if len(got.Connections) != 1 || got.Connections[0].FromComponent != "R1" {
		t.Errorf("connections not replaced wholesale: %+v", got.Connections)
	}
}
