package record

import (
	"slices"
	"strings"
	"time"
)

// Prioritized is implemented by records that rank by priority and date.
type Prioritized interface {
	RecordPriority() string
	RecordDate() time.Time
}

var priorityRank = map[string]int{
	"alta":  0,
	"media": 1,
	"baixa": 2,
}

// PriorityRank returns the sort rank of a priority label; unknown labels sort last.
func PriorityRank(p string) int {
	if r, ok := priorityRank[strings.ToLower(p)]; ok {
		return r
	}
	return len(priorityRank)
}

// SortByPriorityThenDate returns a copy of items ordered by priority
// (alta, media, baixa) then by ascending date. The input is not modified.
func SortByPriorityThenDate[T Prioritized](items []T) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		if d := PriorityRank(a.RecordPriority()) - PriorityRank(b.RecordPriority()); d != 0 {
			return d
		}
		return a.RecordDate().Compare(b.RecordDate())
	})
	return out
}
