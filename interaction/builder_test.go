package interaction

import (
	"math"
	"testing"
	"time"

	"github.com/rushteam/shoprec/core"
)

const eps = 1e-9

func TestBuildUserItemMatrix(t *testing.T) {
	productIDs := []int64{10, 20, 30}
	interactions := []core.Interaction{
		{UserID: 2, ProductID: 10, Weight: 1.0},
		{UserID: 1, ProductID: 20, Weight: 5.0},
		{UserID: 1, ProductID: 20, Weight: 1.0}, // same cell accumulates
		{UserID: 1, ProductID: 30, Weight: 2.0},
		{UserID: 2, ProductID: 99, Weight: 3.0}, // unknown product ignored
	}

	rows, userIDs := BuildUserItemMatrix(interactions, productIDs)

	// users sorted ascending
	if len(userIDs) != 2 || userIDs[0] != 1 || userIDs[1] != 2 {
		t.Fatalf("userIDs = %v, want [1 2]", userIDs)
	}

	// row sums are 1 after normalization
	for i, row := range rows {
		var sum float64
		for _, v := range row {
			sum += v
		}
		if math.Abs(sum-1) > eps {
			t.Errorf("row %d sum = %v, want 1", i, sum)
		}
	}

	// user 1: weights (0, 6, 2) normalized to (0, 0.75, 0.25)
	if rows[0][0] != 0 || math.Abs(rows[0][1]-0.75) > eps || math.Abs(rows[0][2]-0.25) > eps {
		t.Errorf("rows[0] = %v, want [0 0.75 0.25]", rows[0])
	}

	// user 2: only the valid interaction survives
	if rows[1][0] != 1 || rows[1][1] != 0 || rows[1][2] != 0 {
		t.Errorf("rows[1] = %v, want [1 0 0]", rows[1])
	}
}

func TestBuildUserItemMatrix_Empty(t *testing.T) {
	if rows, ids := BuildUserItemMatrix(nil, []int64{1}); rows != nil || ids != nil {
		t.Errorf("empty log should yield (nil, nil), got (%v, %v)", rows, ids)
	}

	// all interactions point outside the catalog
	rows, ids := BuildUserItemMatrix([]core.Interaction{
		{UserID: 1, ProductID: 99, Weight: 1},
	}, []int64{1, 2})
	if rows != nil || ids != nil {
		t.Errorf("out-of-catalog log should yield (nil, nil), got (%v, %v)", rows, ids)
	}
}

func TestBuildHistory(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	var interactions []core.Interaction
	for i := 0; i < 12; i++ {
		interactions = append(interactions, core.Interaction{
			UserID:    1,
			ProductID: int64(100 + i),
			Weight:    1,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		})
	}

	history := BuildHistory(interactions)
	got := history[1]
	if len(got) != 10 {
		t.Fatalf("history length = %d, want 10", len(got))
	}
	// newest first: product 111 down to 102
	for i, pid := range got {
		want := int64(111 - i)
		if pid != want {
			t.Errorf("history[%d] = %d, want %d", i, pid, want)
		}
	}
}
