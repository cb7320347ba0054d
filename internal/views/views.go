// Package views derives the reporting projections from an extracted round
// collection. All builders are pure; they never mutate their input.
package views

import (
	"fmt"
	"strings"

	"github.com/drawproof/drawproof/internal/textutil"
	"github.com/drawproof/drawproof/internal/types"
)

// TwoLists holds the per-round winner list and the per-round bottom-N list.
type TwoLists struct {
	Top    []string
	Bottom []string
}

// BuildTwoLists formats one top entry and one bottom entry per round, in
// ascending round order. The top entry is the round's first name; the bottom
// entry joins the last min(bottomCount, len(names)) names in their original
// order. Fails with types.ErrInvalidBottomCount unless bottomCount >= 1.
func BuildTwoLists(rounds types.RoundCollection, bottomCount int) (*TwoLists, error) {
	if bottomCount < 1 {
		return nil, types.ErrInvalidBottomCount
	}

	lists := &TwoLists{}
	for i, r := range rounds.Sorted() {
		if len(r.Names) == 0 {
			continue
		}
		// A parsed round number is used as-is, zero included; the positional
		// fallback covers only rounds whose digit capture failed.
		label := r.Round
		if label < 0 {
			label = i + 1
		}
		lists.Top = append(lists.Top, fmt.Sprintf("%d. %s", label, r.Names[0]))

		n := bottomCount
		if n > len(r.Names) {
			n = len(r.Names)
		}
		tail := strings.Join(r.Names[len(r.Names)-n:], ", ")
		lists.Bottom = append(lists.Bottom, fmt.Sprintf("%d. %s", label, tail))
	}
	return lists, nil
}

// BuildSpotCounts counts name occurrences in the first round. The round
// numbered 1 is preferred; when absent, the first-discovered round is used,
// not the lowest-numbered one. An empty map is a valid result when there are
// no rounds or the selected round has no names.
func BuildSpotCounts(rounds types.RoundCollection) map[string]int {
	counts := make(map[string]int)
	if len(rounds) == 0 {
		return counts
	}

	sel := -1
	for i, r := range rounds {
		if r.Round == 1 {
			sel = i
			break
		}
	}
	if sel < 0 {
		sel = 0
		for i, r := range rounds {
			if r.Seq < rounds[sel].Seq {
				sel = i
			}
		}
	}

	for _, name := range rounds[sel].Names {
		name = textutil.NormalizeSpace(name)
		if name == "" {
			continue
		}
		counts[name]++
	}
	return counts
}
