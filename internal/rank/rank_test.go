package rank

import (
	"reflect"
	"sort"
	"testing"

	"github.com/lexaindex/lexbuild/internal/model"
)

func TestAssign_PositionalRanks(t *testing.T) {
	rows := []model.WordRow{
		{Form: "low", LAS: 0.1, Impact: 3.0},
		{Form: "high", LAS: 0.9, Impact: 1.0},
		{Form: "mid", LAS: 0.5, Impact: 2.0},
	}

	Assign(rows)

	// Output order is by LAS rank ascending.
	wantOrder := []string{"high", "mid", "low"}
	for i, w := range wantOrder {
		if rows[i].Form != w {
			t.Fatalf("Expected row %d to be %q, got %q", i, w, rows[i].Form)
		}
		if rows[i].RankLAS != i+1 {
			t.Errorf("Expected %q LAS rank %d, got %d", w, i+1, rows[i].RankLAS)
		}
	}

	// Impact ranks are independent of the output order.
	wantImpact := map[string]int{"low": 1, "mid": 2, "high": 3}
	for _, r := range rows {
		if r.RankImpact != wantImpact[r.Form] {
			t.Errorf("Expected %q impact rank %d, got %d", r.Form, wantImpact[r.Form], r.RankImpact)
		}
	}
}

func TestAssign_TiesGetSuccessiveRanks(t *testing.T) {
	rows := []model.WordRow{
		{Form: "first", LAS: 0.5},
		{Form: "second", LAS: 0.5},
		{Form: "third", LAS: 0.5},
	}

	Assign(rows)

	// Stable sort: equal values keep input order and ranks are not shared.
	for i, want := range []string{"first", "second", "third"} {
		if rows[i].Form != want {
			t.Errorf("Expected tie order preserved at %d: want %q, got %q", i, want, rows[i].Form)
		}
		if rows[i].RankLAS != i+1 {
			t.Errorf("Expected successive rank %d for %q, got %d", i+1, rows[i].Form, rows[i].RankLAS)
		}
	}
}

func TestAssign_Deterministic(t *testing.T) {
	build := func() []model.WordRow {
		return []model.WordRow{
			{Form: "a", LAS: 0.3, Impact: 0.5},
			{Form: "b", LAS: 0.3, Impact: 1.5},
			{Form: "c", LAS: 0.7, Impact: 0.5},
			{Form: "d", LAS: 0.1, Impact: 2.5},
		}
	}

	first := build()
	second := build()
	Assign(first)
	Assign(second)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical rank assignment across runs:\n%v\n%v", first, second)
	}

	// Re-sorting by primary rank recovers the emitted order exactly.
	shuffled := append([]model.WordRow(nil), first...)
	sort.SliceStable(shuffled, func(i, j int) bool { return shuffled[i].RankLAS < shuffled[j].RankLAS })
	if !reflect.DeepEqual(shuffled, first) {
		t.Error("Expected output to already be ordered by LAS rank")
	}
}

func TestAssign_RoundsAfterRanking(t *testing.T) {
	rows := []model.WordRow{
		{Form: "a", LAS: 0.123456, Impact: 1.4947649},
		{Form: "b", LAS: 0.123449, Impact: 0},
	}

	Assign(rows)

	// Ranks reflect the unrounded values even when rounding makes them equal.
	if rows[0].RankLAS != 1 || rows[1].RankLAS != 2 {
		t.Errorf("Expected ranking on unrounded LAS, got ranks %d, %d", rows[0].RankLAS, rows[1].RankLAS)
	}
	if rows[0].LAS != 0.1235 || rows[1].LAS != 0.1234 {
		t.Errorf("Expected 4-decimal LAS rounding, got %v, %v", rows[0].LAS, rows[1].LAS)
	}
	if rows[0].Impact != 1.4948 {
		t.Errorf("Expected 4-decimal impact rounding, got %v", rows[0].Impact)
	}
}

func TestAssign_Empty(t *testing.T) {
	var rows []model.WordRow
	Assign(rows) // must not panic
}
