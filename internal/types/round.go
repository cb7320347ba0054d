package types

import (
	"sort"
	"time"
)

// Round is one numbered draw event with its ordered participant names.
// Duplicate names are allowed; order is the order of appearance on the page.
type Round struct {
	Round int      `json:"round" bson:"round"`
	Names []string `json:"names" bson:"names"`

	// Seq is the discovery position during extraction (0-based, pre-sort).
	// Spot counting falls back to the first-discovered round, which is not
	// necessarily the lowest-numbered one.
	Seq int `json:"-" bson:"-"`
}

// RoundCollection is an ordered set of rounds. Round numbers are expected to
// be unique but duplicates are kept and sorted together.
type RoundCollection []Round

// Sort orders the collection ascending by round number. The sort is stable so
// rounds sharing a number keep their discovery order.
func (rc RoundCollection) Sort() {
	sort.SliceStable(rc, func(i, j int) bool { return rc[i].Round < rc[j].Round })
}

// Sorted returns a sorted copy, leaving the receiver untouched.
func (rc RoundCollection) Sorted() RoundCollection {
	out := make(RoundCollection, len(rc))
	copy(out, rc)
	out.Sort()
	return out
}

// Report is the result of one verification run.
type Report struct {
	Code        string         `json:"code" bson:"code"`
	URL         string         `json:"url" bson:"url"`
	RoundsCount int            `json:"roundsCount" bson:"rounds_count"`
	TopList     []string       `json:"topList" bson:"top_list"`
	BottomList  []string       `json:"bottomList" bson:"bottom_list"`
	SpotCounts  map[string]int `json:"spotCounts" bson:"spot_counts"`
	FetchedAt   time.Time      `json:"fetchedAt" bson:"fetched_at"`
}
