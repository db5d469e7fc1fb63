package listview

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, time.Minute)
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved := State{
		Search:   "chai",
		Filters:  map[string]string{"category": "Beverages"},
		SortBy:   "unit_price",
		SortDesc: true,
		Page:     2,
		PerPage:  12,
		Total:    40,
	}
	if err := store.Save(ctx, "session-a", "products", saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "session-a", "products", State{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Search != saved.Search || got.SortBy != saved.SortBy || !got.SortDesc ||
		got.Page != saved.Page || got.PerPage != saved.PerPage || got.Total != saved.Total {
		t.Fatalf("state did not round-trip: %+v", got)
	}
	if got.Filter("category") != "Beverages" {
		t.Fatalf("filters did not round-trip: %+v", got.Filters)
	}
}

func TestStoreMissingKeyReturnsDefault(t *testing.T) {
	store := newTestStore(t)

	def := State{SortBy: "company_name", Page: 1, PerPage: 12}
	got, err := store.Load(context.Background(), "unknown", "customers", def)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.SortBy != def.SortBy || got.Page != 1 {
		t.Fatalf("expected default state, got %+v", got)
	}
}

func TestStoreIsolatesSessionsAndEntities(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "session-a", "orders", State{Search: "berlin"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	other, err := store.Load(ctx, "session-b", "orders", State{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if other.Search != "" {
		t.Fatalf("sessions must be isolated, got %+v", other)
	}

	entity, err := store.Load(ctx, "session-a", "products", State{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if entity.Search != "" {
		t.Fatalf("entities must be isolated, got %+v", entity)
	}
}

func TestStoreNilClientDegrades(t *testing.T) {
	store := NewStore(nil, time.Minute)
	ctx := context.Background()

	def := State{Page: 1, PerPage: 10}
	got, err := store.Load(ctx, "session", "orders", def)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Page != 1 {
		t.Fatalf("expected default, got %+v", got)
	}
	if err := store.Save(ctx, "session", "orders", got); err != nil {
		t.Fatalf("save on nil client must no-op, got %v", err)
	}
}

func TestStoreEmptySessionSkipsRedis(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "", "orders", State{Search: "x"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx, "", "orders", State{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Search != "" {
		t.Fatalf("empty session must be stateless, got %+v", got)
	}
}
