package views

import (
	"errors"
	"reflect"
	"testing"

	"github.com/drawproof/drawproof/internal/types"
)

func TestBuildTwoLists(t *testing.T) {
	rounds := types.RoundCollection{
		{Round: 1, Names: []string{"Alice", "Bob"}, Seq: 0},
		{Round: 2, Names: []string{"Carol"}, Seq: 1},
	}

	lists, err := BuildTwoLists(rounds, 1)
	if err != nil {
		t.Fatalf("BuildTwoLists: %v", err)
	}
	if want := []string{"1. Alice", "2. Carol"}; !reflect.DeepEqual(lists.Top, want) {
		t.Errorf("top = %v, want %v", lists.Top, want)
	}
	if want := []string{"1. Bob", "2. Carol"}; !reflect.DeepEqual(lists.Bottom, want) {
		t.Errorf("bottom = %v, want %v", lists.Bottom, want)
	}
}

func TestBuildTwoListsBottomClamped(t *testing.T) {
	rounds := types.RoundCollection{
		{Round: 1, Names: []string{"Alice", "Bob", "Carol"}},
	}

	lists, err := BuildTwoLists(rounds, 5)
	if err != nil {
		t.Fatalf("BuildTwoLists: %v", err)
	}
	if want := []string{"1. Alice, Bob, Carol"}; !reflect.DeepEqual(lists.Bottom, want) {
		t.Errorf("bottom = %v, want %v", lists.Bottom, want)
	}
}

func TestBuildTwoListsBottomTail(t *testing.T) {
	rounds := types.RoundCollection{
		{Round: 4, Names: []string{"A", "B", "C", "D", "E"}},
	}

	lists, err := BuildTwoLists(rounds, 2)
	if err != nil {
		t.Fatalf("BuildTwoLists: %v", err)
	}
	if want := []string{"4. D, E"}; !reflect.DeepEqual(lists.Bottom, want) {
		t.Errorf("bottom = %v, want %v", lists.Bottom, want)
	}
	if want := []string{"4. A"}; !reflect.DeepEqual(lists.Top, want) {
		t.Errorf("top = %v, want %v", lists.Top, want)
	}
}

func TestBuildTwoListsSortsInput(t *testing.T) {
	rounds := types.RoundCollection{
		{Round: 2, Names: []string{"Carol"}, Seq: 0},
		{Round: 1, Names: []string{"Alice"}, Seq: 1},
	}

	lists, err := BuildTwoLists(rounds, 1)
	if err != nil {
		t.Fatalf("BuildTwoLists: %v", err)
	}
	if want := []string{"1. Alice", "2. Carol"}; !reflect.DeepEqual(lists.Top, want) {
		t.Errorf("top = %v, want %v", lists.Top, want)
	}
	// The input collection must not be reordered.
	if rounds[0].Round != 2 {
		t.Error("BuildTwoLists mutated its input")
	}
}

func TestBuildTwoListsRoundZeroKeepsLabel(t *testing.T) {
	rounds := types.RoundCollection{
		{Round: 0, Names: []string{"Alice"}},
		{Round: 1, Names: []string{"Bob"}},
	}

	lists, err := BuildTwoLists(rounds, 1)
	if err != nil {
		t.Fatalf("BuildTwoLists: %v", err)
	}
	// Round 0 is a legitimate parsed number, not a capture failure; it must
	// not be rewritten to its positional index.
	if want := []string{"0. Alice", "1. Bob"}; !reflect.DeepEqual(lists.Top, want) {
		t.Errorf("top = %v, want %v", lists.Top, want)
	}
}

func TestBuildTwoListsInvalidBottomCount(t *testing.T) {
	rounds := types.RoundCollection{{Round: 1, Names: []string{"Alice"}}}
	for _, n := range []int{0, -1, -100} {
		if _, err := BuildTwoLists(rounds, n); !errors.Is(err, types.ErrInvalidBottomCount) {
			t.Errorf("bottomCount=%d: expected ErrInvalidBottomCount, got %v", n, err)
		}
	}
}

func TestBuildSpotCountsPrefersRoundOne(t *testing.T) {
	rounds := types.RoundCollection{
		{Round: 1, Names: []string{"Alice", "Bob", "Alice"}, Seq: 2},
		{Round: 2, Names: []string{"Carol"}, Seq: 0},
	}

	counts := BuildSpotCounts(rounds)
	want := map[string]int{"Alice": 2, "Bob": 1}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("counts = %v, want %v", counts, want)
	}
}

func TestBuildSpotCountsFallsBackToFirstDiscovered(t *testing.T) {
	// No round numbered 1. The first-discovered round (Seq 0) wins, even
	// though round 2 sorts first.
	rounds := types.RoundCollection{
		{Round: 2, Names: []string{"Carol"}, Seq: 1},
		{Round: 5, Names: []string{"Dave", "Dave"}, Seq: 0},
	}

	counts := BuildSpotCounts(rounds)
	want := map[string]int{"Dave": 2}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("counts = %v, want %v", counts, want)
	}
}

func TestBuildSpotCountsEmpty(t *testing.T) {
	if counts := BuildSpotCounts(nil); len(counts) != 0 {
		t.Errorf("expected empty counts for no rounds, got %v", counts)
	}
}

func TestBuildSpotCountsSkipsBlankNames(t *testing.T) {
	rounds := types.RoundCollection{
		{Round: 1, Names: []string{"Alice", "   ", ""}},
	}
	counts := BuildSpotCounts(rounds)
	want := map[string]int{"Alice": 1}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("counts = %v, want %v", counts, want)
	}
}

func TestBuildSpotCountsTotalMatchesNames(t *testing.T) {
	rounds := types.RoundCollection{
		{Round: 1, Names: []string{"Alice", "Bob", "Alice", "Carol"}},
	}
	counts := BuildSpotCounts(rounds)
	total := 0
	for _, c := range counts {
		total += c
	}
	if total != 4 {
		t.Errorf("count total = %d, want 4", total)
	}
}
