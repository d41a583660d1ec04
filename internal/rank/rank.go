// Package rank assigns the per-dataset ranking positions.
package rank

import (
	"sort"

	"github.com/lexaindex/lexbuild/internal/model"
	"github.com/lexaindex/lexbuild/internal/transform"
)

// Assign runs the multi-pass ranking over a full dataset:
//
//  1. stable sort by LAS descending, rank = 1-based position
//  2. stable sort by impact descending, rank = 1-based position
//  3. stable sort by LAS rank ascending to fix the output order
//
// Ranks are positional, not shared: equal values get successive ranks in
// first-seen order, which keeps the assignment deterministic for a fixed
// input order. The final pass also rounds LAS and impact for output.
func Assign(rows []model.WordRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].LAS > rows[j].LAS
	})
	for i := range rows {
		rows[i].RankLAS = i + 1
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Impact > rows[j].Impact
	})
	for i := range rows {
		rows[i].RankImpact = i + 1
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].RankLAS < rows[j].RankLAS
	})
	for i := range rows {
		rows[i].LAS = transform.Round(rows[i].LAS, 4)
		rows[i].Impact = transform.Round(rows[i].Impact, 4)
	}
}
