package snapshot

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/rushteam/shoprec/core"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Engine:     "hybrid",
		Version:    Version,
		TrainedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		ProductIDs: []int64{10, 20, 30},
		UserIDs:    []int64{1, 2},
		Features: [][]float64{
			{-1, 1, 0, 0.8, 1},
			{0, 0, 1, 0.5, 0.5},
			{1, 1, 0, 0.6, 0},
		},
		ProductSim: [][]float64{
			{1, 0.2, 0.9},
			{0.2, 1, 0.1},
			{0.9, 0.1, 1},
		},
		UserItem: [][]float64{
			{0.5, 0.5, 0},
			{0, 0, 1},
		},
		UserSim: [][]float64{
			{1, 0},
			{0, 1},
		},
		Profiles: map[int64]core.PreferenceProfile{
			1: {PreferredCategories: []string{"books"}, AvgPrice: 15, InteractionCount: 3, AvgRating: 4.5},
		},
		History: map[int64][]int64{1: {20, 10}},
		Products: []core.Product{
			{ID: 10, Category: "books", Price: 10, Rating: 4, Reviews: 5},
			{ID: 20, Category: "books", Price: 20, Rating: 5, Reviews: 50},
			{ID: 30, Category: "toys", Price: 30, Rating: 3, Reviews: 0},
		},
	}
}

func TestFileStore_SaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model", "snapshot.json")
	fs := NewFileStore(path)

	want := testSnapshot()
	if err := fs.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := fs.Load("hybrid")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !reflect.DeepEqual(got.ProductIDs, want.ProductIDs) {
		t.Errorf("ProductIDs = %v, want %v", got.ProductIDs, want.ProductIDs)
	}
	if !reflect.DeepEqual(got.UserIDs, want.UserIDs) {
		t.Errorf("UserIDs = %v, want %v", got.UserIDs, want.UserIDs)
	}
	if !reflect.DeepEqual(got.ProductSim, want.ProductSim) {
		t.Errorf("ProductSim = %v, want %v", got.ProductSim, want.ProductSim)
	}
	if !reflect.DeepEqual(got.UserItem, want.UserItem) {
		t.Errorf("UserItem = %v, want %v", got.UserItem, want.UserItem)
	}
	if !reflect.DeepEqual(got.Profiles, want.Profiles) {
		t.Errorf("Profiles = %v, want %v", got.Profiles, want.Profiles)
	}
	if !reflect.DeepEqual(got.History, want.History) {
		t.Errorf("History = %v, want %v", got.History, want.History)
	}
	if !got.TrainedAt.Equal(want.TrainedAt) {
		t.Errorf("TrainedAt = %v, want %v", got.TrainedAt, want.TrainedAt)
	}
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	fs := NewFileStore(path)

	first := testSnapshot()
	if err := fs.Save(first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	second := testSnapshot()
	second.ProductIDs = []int64{99}
	second.Products = []core.Product{{ID: 99, Category: "new", Price: 1, Rating: 1}}
	if err := fs.Save(second); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := fs.Load("hybrid")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got.ProductIDs, []int64{99}) {
		t.Errorf("ProductIDs = %v, want [99]", got.ProductIDs)
	}
}

func TestFileStore_LoadMissing(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))
	_, err := fs.Load("hybrid")
	if !core.IsNotFound(err) {
		t.Errorf("Load() error = %v, want NOT_FOUND", err)
	}
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileStore(path)
	_, err := fs.Load("hybrid")
	if !core.IsCorrupt(err) {
		t.Errorf("Load() error = %v, want CORRUPT", err)
	}
}

func TestFileStore_LoadEngineMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	fs := NewFileStore(path)

	s := testSnapshot()
	s.Engine = "basic"
	if err := fs.Save(s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := fs.Load("hybrid"); !core.IsCorrupt(err) {
		t.Errorf("Load() error = %v, want CORRUPT on engine mismatch", err)
	}

	// loading under the owning engine succeeds
	if _, err := fs.Load("basic"); err != nil {
		t.Errorf("Load(basic) error = %v", err)
	}
}

func TestSnapshotEvaluate(t *testing.T) {
	s := testSnapshot()
	st := s.Evaluate()

	if st.Users != 2 || st.Products != 3 {
		t.Errorf("Users/Products = %d/%d, want 2/3", st.Users, st.Products)
	}
	if st.Interactions != 3 {
		t.Errorf("Interactions = %d, want 3", st.Interactions)
	}
	if st.Coverage != 0.5 {
		t.Errorf("Coverage = %v, want 0.5", st.Coverage)
	}
	if st.Sparsity != 0.5 {
		t.Errorf("Sparsity = %v, want 0.5", st.Sparsity)
	}

	empty := &Snapshot{ProductIDs: []int64{1}}
	if st := empty.Evaluate(); st.Sparsity != 1 {
		t.Errorf("empty Sparsity = %v, want 1", st.Sparsity)
	}
}
