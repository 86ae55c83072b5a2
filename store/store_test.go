package store

import (
	"context"
	"testing"

	"github.com/rushteam/shoprec/core"
)

func TestMemoryStore_KV(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("Get(missing) error = %v, want ErrStoreNotFound", err)
	}

	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Errorf("Get(k) = (%q, %v), want (v, nil)", got, err)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Errorf("Get after Delete error = %v, want ErrStoreNotFound", err)
	}
}

func TestMemoryStore_List(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.RPush(ctx, "log", []byte("a"), []byte("b"), []byte("c")); err != nil {
		t.Fatalf("RPush() error = %v", err)
	}

	all, err := s.LRange(ctx, "log", 0, -1)
	if err != nil {
		t.Fatalf("LRange() error = %v", err)
	}
	if len(all) != 3 || string(all[0]) != "a" || string(all[2]) != "c" {
		t.Errorf("LRange(0,-1) = %q, want [a b c]", all)
	}

	part, err := s.LRange(ctx, "log", 1, 1)
	if err != nil || len(part) != 1 || string(part[0]) != "b" {
		t.Errorf("LRange(1,1) = (%q, %v), want ([b], nil)", part, err)
	}

	if empty, _ := s.LRange(ctx, "nothing", 0, -1); len(empty) != 0 {
		t.Errorf("LRange(nothing) = %q, want empty", empty)
	}
}

func TestCatalogAdapter(t *testing.T) {
	ctx := context.Background()
	adapter := NewCatalogAdapter(NewMemoryStore(), "shop")

	// empty mirror reads as empty catalog, not an error
	products, err := adapter.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(products) != 0 {
		t.Errorf("len = %d, want 0", len(products))
	}

	want := []core.Product{
		{ID: 1, Category: "books", Price: 10, Rating: 4.5, Reviews: 3},
		{ID: 2, Category: "toys", Price: 25, Rating: 3.0, Reviews: 0},
	}
	if err := adapter.SaveProducts(ctx, want); err != nil {
		t.Fatalf("SaveProducts() error = %v", err)
	}

	got, err := adapter.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].Category != "toys" {
		t.Errorf("ListProducts() = %v, want %v", got, want)
	}

	// invalid product is rejected before anything is written
	bad := []core.Product{{ID: 3, Price: -1, Rating: 2}}
	if err := adapter.SaveProducts(ctx, bad); err == nil {
		t.Error("SaveProducts() with negative price should fail")
	}
}

func TestCatalogAdapter_CorruptMirror(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	if err := kv.Set(ctx, "shop:products", []byte("{broken")); err != nil {
		t.Fatal(err)
	}

	adapter := NewCatalogAdapter(kv, "shop")
	if _, err := adapter.ListProducts(ctx); !core.IsCorrupt(err) {
		t.Errorf("ListProducts() error = %v, want CORRUPT", err)
	}
}

func TestInteractionAdapter(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	adapter := NewInteractionAdapter(kv, "shop")

	if err := adapter.AppendInteraction(ctx, &core.Interaction{
		UserID: 1, ProductID: 10, Kind: core.KindPurchase,
	}); err != nil {
		t.Fatalf("AppendInteraction() error = %v", err)
	}
	if err := adapter.AppendInteraction(ctx, &core.Interaction{
		UserID: 1, ProductID: 20, Kind: core.KindView,
	}); err != nil {
		t.Fatalf("AppendInteraction() error = %v", err)
	}

	// corrupt row in the middle of the log is skipped, not fatal
	if err := kv.RPush(ctx, "shop:log", []byte("garbage")); err != nil {
		t.Fatal(err)
	}

	list, err := adapter.ListInteractions(ctx)
	if err != nil {
		t.Fatalf("ListInteractions() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}

	// weights were assigned at write time from the kind table
	if list[0].Weight != 5.0 {
		t.Errorf("purchase weight = %v, want 5.0", list[0].Weight)
	}
	if list[1].Weight != 1.0 {
		t.Errorf("view weight = %v, want 1.0", list[1].Weight)
	}

	if err := adapter.AppendInteraction(ctx, nil); err == nil {
		t.Error("AppendInteraction(nil) should fail")
	}
}
